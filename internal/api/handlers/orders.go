package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/invoice"
	"github.com/vaishnavisales/storefront/internal/service"
)

// HandleListOrders handles GET /v1/orders. Customers get their own orders,
// the administrator in admin mode gets all of them.
func HandleListOrders(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		viewer, err := viewerFor(c, svc, claims)
		if err != nil {
			respondError(c, logger, "Failed to resolve viewer", err)
			return
		}

		orders, err := svc.Orders.ListVisible(c.Request.Context(), viewer)
		if err != nil {
			respondError(c, logger, "Failed to list orders", err)
			return
		}
		if status := domain.OrderStatus(c.Query("status")); status != "" {
			filtered := make([]domain.Order, 0, len(orders))
			for _, o := range orders {
				if o.Status == status {
					filtered = append(filtered, o)
				}
			}
			orders = filtered
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"count":  len(orders),
		})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := visibleOrder(c, svc, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleGetOrderInvoice handles GET /v1/orders/:id/invoice
func HandleGetOrderInvoice(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := visibleOrder(c, svc, logger)
		if !ok {
			return
		}

		var buf bytes.Buffer
		inv := invoice.FromOrder(order, svc.Store, svc.Catalog, time.Now())
		if err := invoice.RenderHTML(&buf, inv); err != nil {
			respondError(c, logger, "Failed to render invoice", err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

// HandleGetOrderEvents handles GET /v1/orders/:id/events
func HandleGetOrderEvents(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		viewer, err := viewerFor(c, svc, claims)
		if err != nil {
			respondError(c, logger, "Failed to resolve viewer", err)
			return
		}

		events, err := svc.Orders.Events(c.Request.Context(), viewer, c.Param("id"))
		if err != nil {
			respondError(c, logger, "Failed to get order events", err)
			return
		}
		if events == nil {
			events = []*domain.OrderEvent{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

func visibleOrder(c *gin.Context, svc *service.Services, logger *zap.Logger) (*domain.Order, bool) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return nil, false
	}
	viewer, err := viewerFor(c, svc, claims)
	if err != nil {
		respondError(c, logger, "Failed to resolve viewer", err)
		return nil, false
	}

	order, err := svc.Orders.Get(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to get order", err)
		return nil, false
	}
	return order, true
}
