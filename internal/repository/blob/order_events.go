package blob

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
)

type orderEventRepository struct {
	events *storage.Collection[domain.OrderEvent]
	logger *zap.Logger
}

// NewOrderEventRepository creates a new order event repository
func NewOrderEventRepository(store storage.Store, logger *zap.Logger) *orderEventRepository {
	return &orderEventRepository{
		events: storage.NewCollection[domain.OrderEvent](store, storage.KeyOrderEvents, logger),
		logger: logger,
	}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.events.Mutate(ctx, func(events []domain.OrderEvent) ([]domain.OrderEvent, error) {
		return append(events, *event), nil
	})
	if err != nil {
		r.logger.Error("Failed to create order event", zap.Error(err))
		return err
	}
	return nil
}

// GetByOrderID returns the events of one order, oldest first
func (r *orderEventRepository) GetByOrderID(ctx context.Context, orderID string) ([]*domain.OrderEvent, error) {
	events, err := r.events.List(ctx)
	if err != nil {
		r.logger.Error("Failed to get order events by order ID", zap.Error(err))
		return nil, err
	}

	var result []*domain.OrderEvent
	for i := range events {
		if events[i].OrderID == orderID {
			result = append(result, &events[i])
		}
	}
	return result, nil
}
