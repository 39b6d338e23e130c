package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/service"
)

// UpdateStatusRequest represents an order status change
type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// HandleCreateManualOrders handles POST /v1/admin/orders
func HandleCreateManualOrders(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []service.ManualOrderEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		orders, err := svc.Orders.CreateManualOrders(c.Request.Context(), "", entries)
		if err != nil {
			respondError(c, logger, "Failed to create manual orders", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Orders created successfully",
			"orders":  orders,
		})
	}
}

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		order, err := svc.Orders.AdvanceStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, logger, "Failed to update order status", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleOrderTransition handles the single-step shortcuts such as
// POST /v1/admin/orders/:id/preparing
func HandleOrderTransition(
	transition func(ctx context.Context, orderID string) (*domain.Order, error),
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := transition(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, "Failed to update order status", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleConfirmOrder handles POST /v1/admin/orders/:id/confirm
func HandleConfirmOrder(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, sale, err := svc.Orders.ConfirmOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, "Failed to confirm order", err)
			return
		}

		resp := gin.H{"order": order}
		if sale != nil {
			resp["sale"] = sale
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleClearOrders handles DELETE /v1/admin/orders
func HandleClearOrders(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Orders.ClearAllOrders(c.Request.Context()); err != nil {
			respondError(c, logger, "Failed to clear orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All orders cleared"})
	}
}

// HandleListSales handles GET /v1/admin/sales
func HandleListSales(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := svc.Sales.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, "Failed to list sales", err)
			return
		}
		if sales == nil {
			sales = []domain.Sale{}
		}
		c.JSON(http.StatusOK, gin.H{
			"sales": sales,
			"count": len(sales),
			"total": service.Total(sales),
		})
	}
}

// HandleRecordSale handles POST /v1/admin/sales
func HandleRecordSale(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		sale, err := svc.Sales.RecordSale(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to record sale", err)
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

// HandleClearSales handles DELETE /v1/admin/sales
func HandleClearSales(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Sales.ClearAllSales(c.Request.Context()); err != nil {
			respondError(c, logger, "Failed to clear sales", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All sales cleared"})
	}
}

// HandleListUsers handles GET /v1/admin/users?q=
func HandleListUsers(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.Auth.ListUsers(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, logger, "Failed to list users", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users": users,
			"count": len(users),
		})
	}
}

// HandleDeleteUser handles DELETE /v1/admin/users/:id
func HandleDeleteUser(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if err := svc.Auth.DeleteUser(c.Request.Context(), userID); err != nil {
			respondError(c, logger, "Failed to delete user", err)
			return
		}
		svc.Carts.Drop(userID)
		c.Status(http.StatusNoContent)
	}
}
