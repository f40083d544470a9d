package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Product event types published after successful writes.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is the message body describing one product change.
type ProductEvent struct {
	EventID    string                  `json:"eventId"`
	Type       string                  `json:"type"`
	ProductID  uint                    `json:"productId"`
	Product    *models.ProductResponse `json:"product,omitempty"`
	OccurredAt time.Time               `json:"occurredAt"`
}

// NewProductEvent stamps a new event with a fresh ID.
func NewProductEvent(eventType string, productID uint, product *models.ProductResponse) ProductEvent {
	return ProductEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event ProductEvent) error
}

// JSONPublisher is the transport used by QueuePublisher; the RabbitMQ client
// satisfies it.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, v interface{}) error
}

// QueuePublisher publishes product events as JSON messages.
type QueuePublisher struct {
	transport JSONPublisher
}

// NewQueuePublisher publishes through transport, normally a rabbitmq.Client.
func NewQueuePublisher(transport JSONPublisher) *QueuePublisher {
	return &QueuePublisher{transport: transport}
}

// PublishProductEvent sends event to the product events queue.
func (p *QueuePublisher) PublishProductEvent(ctx context.Context, event ProductEvent) error {
	return p.transport.PublishJSON(ctx, event)
}

// LogProductEvent decodes a delivered event body and writes it to the audit log.
func LogProductEvent(body []byte) error {
	var event ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode product event: %w", err)
	}
	if event.Type == "" || event.ProductID == 0 {
		return fmt.Errorf("incomplete product event %q", event.EventID)
	}
	zap.L().Info("product event",
		zap.String("event_id", event.EventID),
		zap.String("type", event.Type),
		zap.Uint("product_id", event.ProductID),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
