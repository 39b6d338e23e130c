package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/api/handlers"
	"github.com/vaishnavisales/storefront/internal/api/middleware"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *service.Services, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger, cfg.IsProduction()))
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.Store.Name + " Storefront API",
			"store":   svc.Store,
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"POST /v1/auth/login",
				"POST /v1/cart/checkout",
				"GET /v1/orders",
				"GET /v1/admin/sales",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authenticate := middleware.AuthMiddleware(svc.Issuer, svc.Sessions, logger)

	v1 := router.Group("/v1")
	{
		// Public catalog
		v1.GET("/catalog/products", handlers.HandleListProducts(svc, logger))
		v1.GET("/catalog/products/:id", handlers.HandleGetProduct(svc, logger))
		v1.GET("/catalog/categories", handlers.HandleListCategories(svc))

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", handlers.HandleSignup(svc, logger))
			authRoutes.POST("/login", handlers.HandleLogin(svc, logger))
			authRoutes.POST("/forgot-password", handlers.HandleForgotPassword(cfg, svc, logger))
			authRoutes.POST("/reset-password", handlers.HandleResetPassword(svc, logger))
			authRoutes.POST("/logout", authenticate, handlers.HandleLogout(svc, logger))
		}

		// Signed-in customer routes
		userRoutes := v1.Group("")
		userRoutes.Use(authenticate)
		{
			userRoutes.GET("/me", handlers.HandleMe(svc, logger))
			userRoutes.PATCH("/me", handlers.HandleUpdateMe(svc, logger))
			userRoutes.POST("/me/admin-mode", handlers.HandleToggleAdminMode(svc, logger))

			userRoutes.GET("/cart", handlers.HandleGetCart(svc))
			userRoutes.POST("/cart/items", handlers.HandleAddCartItem(svc, logger))
			userRoutes.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(svc))
			userRoutes.DELETE("/cart", handlers.HandleClearCart(svc))
			userRoutes.POST("/cart/checkout",
				middleware.IdempotencyMiddleware(repos, logger),
				handlers.HandleCheckout(svc, repos, logger),
			)

			userRoutes.GET("/orders", handlers.HandleListOrders(svc, logger))
			userRoutes.GET("/orders/:id", handlers.HandleGetOrder(svc, logger))
			userRoutes.GET("/orders/:id/invoice", handlers.HandleGetOrderInvoice(svc, logger))
			userRoutes.GET("/orders/:id/events", handlers.HandleGetOrderEvents(svc, logger))

			userRoutes.GET("/wishlist", handlers.HandleListWishlist(svc, logger))
			userRoutes.POST("/wishlist/:productId/toggle", handlers.HandleToggleWishlist(svc, logger))
			userRoutes.DELETE("/wishlist/:productId", handlers.HandleRemoveWishlist(svc, logger))
		}

		// Store management: admin role with admin mode switched on
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(authenticate, middleware.AdminMiddleware(svc.Sessions, logger))
		{
			adminRoutes.POST("/orders", handlers.HandleCreateManualOrders(svc, logger))
			adminRoutes.DELETE("/orders", handlers.HandleClearOrders(svc, logger))
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(svc, logger))
			adminRoutes.POST("/orders/:id/preparing", handlers.HandleOrderTransition(svc.Orders.MarkPreparing, logger))
			adminRoutes.POST("/orders/:id/ready", handlers.HandleOrderTransition(svc.Orders.MarkReady, logger))
			adminRoutes.POST("/orders/:id/picked-up", handlers.HandleOrderTransition(svc.Orders.MarkPickedUp, logger))
			adminRoutes.POST("/orders/:id/no-stock", handlers.HandleOrderTransition(svc.Orders.MarkNoStock, logger))
			adminRoutes.POST("/orders/:id/confirm", handlers.HandleConfirmOrder(svc, logger))

			adminRoutes.GET("/sales", handlers.HandleListSales(svc, logger))
			adminRoutes.POST("/sales", handlers.HandleRecordSale(svc, logger))
			adminRoutes.DELETE("/sales", handlers.HandleClearSales(svc, logger))

			adminRoutes.GET("/users", handlers.HandleListUsers(svc, logger))
			adminRoutes.DELETE("/users/:id", handlers.HandleDeleteUser(svc, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
// customRecovery turns a panic into a 500. The panic value is only echoed to
// clients outside production.
func customRecovery(logger *zap.Logger, hideDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		body := gin.H{"error": "internal server error"}
		if !hideDetails {
			body["details"] = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
