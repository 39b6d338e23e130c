package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/api/middleware"
	"github.com/vaishnavisales/storefront/internal/cart"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/service"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// CartItemRequest represents an add-to-cart request
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
}

// CartResponse represents the cart with its totals
type CartResponse struct {
	Lines    []domain.CartLine `json:"lines"`
	Count    int               `json:"count"`
	Total    domain.Money      `json:"total"`
	TotalMRP domain.Money      `json:"total_mrp"`
	Savings  domain.Money      `json:"savings"`
}

func cartResponse(ct *cart.Cart) CartResponse {
	lines := ct.Lines()
	total := pricing.CartTotal(lines)
	mrp := pricing.CartMRP(lines)
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return CartResponse{
		Lines:    lines,
		Count:    count,
		Total:    total,
		TotalMRP: mrp,
		Savings:  pricing.Savings(mrp, total),
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(svc.Carts.For(claims.UserID())))
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}

		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		product, err := svc.Catalog.Get(req.ProductID)
		if err != nil {
			respondError(c, logger, "Failed to get product", err)
			return
		}
		if len(product.Sizes) > 0 && req.Size == "" {
			respondError(c, logger, "Missing size", &errors.ErrValidation{Message: "Please select a size"})
			return
		}
		if req.Size != "" && !product.HasSize(req.Size) {
			respondError(c, logger, "Invalid size", &errors.ErrValidation{
				Message: "Size not available",
				Fields:  map[string]string{"size": req.Size},
			})
			return
		}

		ct := svc.Carts.For(claims.UserID())
		line := ct.Add(product, req.Size)
		logger.Debug("Added to cart",
			zap.String("user_id", claims.UserID()),
			zap.String("product_id", line.ProductID),
			zap.Int("quantity", line.Quantity),
		)
		c.JSON(http.StatusOK, cartResponse(ct))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:productId?size=
func HandleRemoveCartItem(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		ct := svc.Carts.For(claims.UserID())
		ct.Remove(c.Param("productId"), c.Query("size"))
		c.JSON(http.StatusOK, cartResponse(ct))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		ct := svc.Carts.For(claims.UserID())
		ct.Clear()
		c.JSON(http.StatusOK, cartResponse(ct))
	}
}

// HandleCheckout handles POST /v1/cart/checkout. The cart is cleared only when
// every order was stored. A repeated Idempotency-Key replays the first result.
func HandleCheckout(svc *service.Services, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		idemKey, requestHash, existingIDs, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			viewer := service.Viewer{UserID: claims.UserID()}
			orders := make([]domain.Order, 0, len(existingIDs))
			for _, id := range existingIDs {
				order, err := svc.Orders.Get(ctx, viewer, id)
				if err != nil {
					respondError(c, logger, "Failed to load replayed order", err)
					return
				}
				orders = append(orders, *order)
			}
			c.JSON(http.StatusOK, gin.H{"orders": orders, "replayed": true})
			return
		}

		var req service.CheckoutRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
		}

		ct := svc.Carts.For(claims.UserID())
		lines := ct.Lines()
		orders, err := svc.Orders.Checkout(ctx, claims.UserID(), lines, req)
		if err != nil {
			respondError(c, logger, "Failed to place order", err)
			return
		}
		// items added while the order was being placed stay in the cart
		ct.Subtract(lines)

		if idemKey != "" {
			ids := make([]string, len(orders))
			for i, o := range orders {
				ids[i] = o.ID
			}
			if err := repos.IdempotencyKey.Create(ctx, &domain.IdempotencyKey{
				Key:         idemKey,
				UserID:      claims.UserID(),
				RequestHash: requestHash,
				OrderIDs:    ids,
			}); err != nil {
				logger.Warn("Failed to store idempotency key", zap.String("key", idemKey), zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully!",
			"orders":  orders,
		})
	}
}
