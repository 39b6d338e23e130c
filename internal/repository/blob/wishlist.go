package blob

import (
	"context"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
)

type wishlistRepository struct {
	store  storage.Store
	logger *zap.Logger
}

// NewWishlistRepository creates a wishlist repository keeping one list per user namespace
func NewWishlistRepository(store storage.Store, logger *zap.Logger) *wishlistRepository {
	return &wishlistRepository{
		store:  store,
		logger: logger,
	}
}

func (r *wishlistRepository) collection(userID string) *storage.Collection[domain.Product] {
	return storage.NewCollection[domain.Product](storage.UserScope(r.store, userID), storage.KeyWishlist, r.logger)
}

func (r *wishlistRepository) List(ctx context.Context, userID string) ([]domain.Product, error) {
	items, err := r.collection(userID).List(ctx)
	if err != nil {
		r.logger.Error("Failed to list wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) Add(ctx context.Context, userID string, product domain.Product) (bool, error) {
	added := false
	_, err := r.collection(userID).Mutate(ctx, func(items []domain.Product) ([]domain.Product, error) {
		added = false
		for _, p := range items {
			if p.ID == product.ID {
				return items, nil
			}
		}
		added = true
		return append(items, product), nil
	})
	if err != nil {
		r.logger.Error("Failed to add to wishlist", zap.String("user_id", userID), zap.Error(err))
		return false, err
	}
	return added, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	removed := false
	_, err := r.collection(userID).Mutate(ctx, func(items []domain.Product) ([]domain.Product, error) {
		removed = false
		kept := items[:0]
		for _, p := range items {
			if p.ID == productID {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		return kept, nil
	})
	if err != nil {
		r.logger.Error("Failed to remove from wishlist", zap.String("user_id", userID), zap.Error(err))
		return false, err
	}
	return removed, nil
}
