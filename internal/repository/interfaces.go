package repository

import (
	"context"

	"github.com/vaishnavisales/storefront/internal/domain"
)

// OrderRepository defines order data access methods. Lists are newest first.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Prepend stores orders ahead of the existing ones, in the given order
	Prepend(ctx context.Context, orders ...domain.Order) error
	// Update applies fn to the stored order and saves the result. An error from
	// fn aborts the update and is returned unchanged.
	Update(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error)
	Clear(ctx context.Context) error
}

// SaleRepository defines sale data access methods. Sales are append/clear only;
// Remove exists so a failed composite operation can take back its own sale.
type SaleRepository interface {
	List(ctx context.Context) ([]domain.Sale, error)
	Prepend(ctx context.Context, sale domain.Sale) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// UserRepository defines user data access methods
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// WishlistRepository defines per-user wishlist data access methods
type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]domain.Product, error)
	// Add appends product unless it is already listed and reports whether it was added
	Add(ctx context.Context, userID string, product domain.Product) (bool, error)
	// Remove reports whether productID was listed
	Remove(ctx context.Context, userID, productID string) (bool, error)
}

// OrderEventRepository defines order event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID string) ([]*domain.OrderEvent, error)
}

// IdempotencyKeyRepository defines idempotency key data access methods
type IdempotencyKeyRepository interface {
	// GetByKey returns nil without error when the key is unknown
	GetByKey(ctx context.Context, userID, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Order          OrderRepository
	Sale           SaleRepository
	User           UserRepository
	Wishlist       WishlistRepository
	OrderEvent     OrderEventRepository
	IdempotencyKey IdempotencyKeyRepository
}
