package service

import (
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/cart"
	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/session"
	"github.com/vaishnavisales/storefront/internal/storage"
)

// Services aggregates everything the API layer works with
type Services struct {
	Catalog  *catalog.Catalog
	Carts    *cart.Registry
	Sessions *session.Manager
	Issuer   *auth.Issuer
	Orders   *OrderService
	Sales    *SalesService
	Auth     *AuthService
	Wishlist *WishlistService
	Store    domain.StoreInfo
}

// NewServices wires the services on top of store and repos
func NewServices(
	cfg *config.Config,
	store storage.Store,
	repos *repository.Repositories,
	products *catalog.Catalog,
	publisher events.Publisher,
	logger *zap.Logger,
) (*Services, error) {
	info := domain.StoreInfo{
		Name:    cfg.Store.Name,
		Address: cfg.Store.Address,
		Phone:   cfg.Store.Phone,
	}
	sessions := session.NewManager(store, logger)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService, err := NewAuthService(repos, sessions, issuer, cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Catalog:  products,
		Carts:    cart.NewRegistry(),
		Sessions: sessions,
		Issuer:   issuer,
		Orders:   NewOrderService(repos, products, publisher, info, logger),
		Sales:    NewSalesService(repos, products, publisher, logger),
		Auth:     authService,
		Wishlist: NewWishlistService(repos, products, logger),
		Store:    info,
	}, nil
}
