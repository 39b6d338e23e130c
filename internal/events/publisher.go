// Package events publishes order lifecycle events to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
)

// Publisher delivers order events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OrderEvent) error
	Close() error
}

// LogPublisher writes events to the log only
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a publisher used when no brokers are configured
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event *domain.OrderEvent) error {
	p.logger.Info("Order event",
		zap.String("event_id", event.ID),
		zap.String("order_id", event.OrderID),
		zap.String("event_type", event.EventType),
		zap.Any("event_data", event.EventData),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// KafkaPublisher writes events as JSON messages keyed by order id, so all
// events of one order land on the same partition in order
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *domain.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	key := event.OrderID
	if key == "" {
		key = event.EventType
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to write event to kafka",
			zap.String("event_type", event.EventType),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New returns a Kafka publisher when brokers are configured, otherwise a log publisher
func New(brokers []string, topic string, logger *zap.Logger) Publisher {
	if len(brokers) == 0 {
		return NewLogPublisher(logger)
	}
	return NewKafkaPublisher(brokers, topic, logger)
}
