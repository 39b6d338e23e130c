// Package blob implements the repositories on top of whole-collection blobs
// in a storage.Store, one key per collection.
package blob

import (
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/storage"
)

// NewRepositories creates a new set of repositories
func NewRepositories(store storage.Store, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order:          NewOrderRepository(store, logger),
		Sale:           NewSaleRepository(store, logger),
		User:           NewUserRepository(store, logger),
		Wishlist:       NewWishlistRepository(store, logger),
		OrderEvent:     NewOrderEventRepository(store, logger),
		IdempotencyKey: NewIdempotencyKeyRepository(store, logger),
	}
}
