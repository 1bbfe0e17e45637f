// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
	"github.com/nutslove/otel-instrumentation-demo/internal/platform/kafka"
)

// OrderCreatedPublisher writes OrderCreated events through an instrumented
// Kafka producer. Trace context travels in the message headers.
type OrderCreatedPublisher struct {
	producer kafka.Producer
	logger   *zap.Logger
}

// NewOrderCreatedPublisher creates a publisher on top of producer.
func NewOrderCreatedPublisher(producer kafka.Producer, logger *zap.Logger) *OrderCreatedPublisher {
	return &OrderCreatedPublisher{
		producer: producer,
		logger:   logger,
	}
}

// PublishOrderCreated serializes the event and writes it keyed by order id.
func (p *OrderCreatedPublisher) PublishOrderCreated(ctx context.Context, event orders.OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize OrderCreated event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	}
	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("publish OrderCreated event: %w", err)
	}

	p.logger.Info("Sent OrderCreated event", zap.String("order_id", event.OrderID))
	return nil
}
