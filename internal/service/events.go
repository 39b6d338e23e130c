package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/repository"
)

// eventRecorder appends order events to the audit trail and publishes them.
// Both are best effort: a failure is logged and never fails the operation
// that triggered the event.
type eventRecorder struct {
	events    repository.OrderEventRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func (r *eventRecorder) record(ctx context.Context, orderID, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
		CreatedAt: time.Now(),
	}

	if err := r.events.Create(ctx, event); err != nil {
		r.logger.Warn("Failed to append order event",
			zap.String("order_id", orderID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("Failed to publish order event",
			zap.String("order_id", orderID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
