package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/service"
)

// HandleListWishlist handles GET /v1/wishlist
func HandleListWishlist(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		items, err := svc.Wishlist.List(c.Request.Context(), claims.UserID())
		if err != nil {
			respondError(c, logger, "Failed to list wishlist", err)
			return
		}
		if items == nil {
			items = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": items})
	}
}

// HandleToggleWishlist handles POST /v1/wishlist/:productId/toggle
func HandleToggleWishlist(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		listed, err := svc.Wishlist.Toggle(c.Request.Context(), claims.UserID(), c.Param("productId"))
		if err != nil {
			respondError(c, logger, "Failed to toggle wishlist", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_id": c.Param("productId"), "in_wishlist": listed})
	}
}

// HandleRemoveWishlist handles DELETE /v1/wishlist/:productId
func HandleRemoveWishlist(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		if err := svc.Wishlist.Remove(c.Request.Context(), claims.UserID(), c.Param("productId")); err != nil {
			respondError(c, logger, "Failed to remove from wishlist", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_id": c.Param("productId"), "in_wishlist": false})
	}
}
