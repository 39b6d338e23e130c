package blob

import (
	"context"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

type orderRepository struct {
	orders *storage.Collection[domain.Order]
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(store storage.Store, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		orders: storage.NewCollection[domain.Order](store, storage.KeyOrders, logger),
		logger: logger,
	}
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id}
}

func (r *orderRepository) Prepend(ctx context.Context, orders ...domain.Order) error {
	_, err := r.orders.Mutate(ctx, func(existing []domain.Order) ([]domain.Order, error) {
		updated := make([]domain.Order, 0, len(orders)+len(existing))
		updated = append(updated, orders...)
		return append(updated, existing...), nil
	})
	if err != nil {
		r.logger.Error("Failed to store orders", zap.Int("count", len(orders)), zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) Update(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error) {
	var result domain.Order
	_, err := r.orders.Mutate(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			// fn works on a copy so a retry starts from freshly loaded data
			order := orders[i]
			if err := fn(&order); err != nil {
				return nil, err
			}
			orders[i] = order
			result = order
			return orders, nil
		}
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *orderRepository) Clear(ctx context.Context) error {
	if err := r.orders.Replace(ctx, nil); err != nil {
		r.logger.Error("Failed to clear orders", zap.Error(err))
		return err
	}
	return nil
}
