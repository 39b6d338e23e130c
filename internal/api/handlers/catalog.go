package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/service"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// ProductResponse is a product priced for one size
type ProductResponse struct {
	domain.Product
	Size            string       `json:"size,omitempty"`
	UnitPrice       domain.Money `json:"unit_price"`
	UnitMRP         domain.Money `json:"unit_mrp"`
	DiscountPercent int64        `json:"discount_percent"`
}

// HandleListProducts handles GET /v1/catalog/products
func HandleListProducts(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []domain.Product
		if c.Query("featured") == "true" {
			products = svc.Catalog.Featured()
		} else {
			products = svc.Catalog.Search(c.Query("q"), c.Query("category"))
		}
		if products == nil {
			products = []domain.Product{}
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

// HandleGetProduct handles GET /v1/catalog/products/:id. The optional size
// query selects size-specific pricing.
func HandleGetProduct(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Catalog.Get(c.Param("id"))
		if err != nil {
			respondError(c, logger, "Failed to get product", err)
			return
		}

		size := c.Query("size")
		if size == "" && len(product.Sizes) > 0 {
			size = product.Sizes[0]
		}
		if size != "" && !product.HasSize(size) {
			respondError(c, logger, "Invalid size", &errors.ErrValidation{
				Message: "Size not available",
				Fields:  map[string]string{"size": size},
			})
			return
		}

		price := pricing.UnitPrice(product, size)
		mrp := pricing.UnitMRP(product, size)
		c.JSON(http.StatusOK, ProductResponse{
			Product:         *product,
			Size:            size,
			UnitPrice:       price,
			UnitMRP:         mrp,
			DiscountPercent: pricing.DisplayDiscount(mrp, price),
		})
	}
}

// HandleListCategories handles GET /v1/catalog/categories
func HandleListCategories(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": svc.Catalog.Categories()})
	}
}
