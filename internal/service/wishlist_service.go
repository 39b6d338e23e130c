package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/repository"
)

type WishlistService struct {
	repos   *repository.Repositories
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(repos *repository.Repositories, products *catalog.Catalog, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		repos:   repos,
		catalog: products,
		logger:  logger,
	}
}

// List returns the user's saved products in the order they were added
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Product, error) {
	return s.repos.Wishlist.List(ctx, userID)
}

// Contains reports whether productID is on the user's wishlist
func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range items {
		if p.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Add saves a catalog product; adding it twice keeps one entry
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return err
	}
	_, err = s.repos.Wishlist.Add(ctx, userID, *product)
	return persistErr("add to wishlist", err)
}

// Remove drops productID; removing a product that is not listed is a no-op
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	_, err := s.repos.Wishlist.Remove(ctx, userID, productID)
	return persistErr("remove from wishlist", err)
}

// Toggle adds productID if missing, removes it otherwise, and reports whether it is now listed
func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	removed, err := s.repos.Wishlist.Remove(ctx, userID, productID)
	if err != nil {
		return false, persistErr("toggle wishlist", err)
	}
	if removed {
		return false, nil
	}
	if err := s.Add(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}
