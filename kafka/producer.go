package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventOrderCreated     = "order.created"
	EventPaymentSucceeded = "payment.succeeded"
)

// Producer publishes order lifecycle events. A nil Producer is valid and
// drops every event, so callers never need to guard for a disabled broker.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Producer{writer: writer, logger: logger}
}

// envelope wraps every published event. MessageID lets consumers
// deduplicate redeliveries.
type envelope struct {
	MessageID string      `json:"messageId"`
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Publish sends one event keyed by the given key. Failures are logged,
// never surfaced: events are best-effort and must not fail the request
// that produced them.
func (p *Producer) Publish(ctx context.Context, event, key string, payload interface{}) {
	if p == nil {
		return
	}
	value, err := json.Marshal(envelope{
		MessageID: uuid.NewString(),
		Event:     event,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		p.logger.Error("Failed to encode event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		p.logger.Error("Failed to publish event", zap.String("event", event), zap.Error(err))
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
