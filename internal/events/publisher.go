package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ashimkarki/inventory-service/internal/logger"
)

// Stock event operations.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// StockEvent describes one product mutation for downstream consumers.
type StockEvent struct {
	EventID     string `json:"event_id"`
	Operation   string `json:"operation"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Timestamp   int64  `json:"timestamp"`
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits stock events to Kafka. A nil writer disables
// publishing; publish failures are logged, never propagated, so the
// inventory flows do not depend on the broker.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a Publisher over writer. writer may be nil.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish emits one stock event for the given operation and product.
func (p *Publisher) Publish(ctx context.Context, operation string, productID int64, productName string) {
	if p == nil || p.writer == nil {
		return
	}

	event := StockEvent{
		EventID:     uuid.NewString(),
		Operation:   operation,
		ProductID:   productID,
		ProductName: productName,
		Timestamp:   time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal stock event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish stock event", "event_id", event.EventID, "error", err)
		return
	}
	logger.Log.Infow("stock event published",
		"event_id", event.EventID,
		"operation", operation,
		"product_id", productID,
	)
}

// Close closes the underlying writer, if any.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
