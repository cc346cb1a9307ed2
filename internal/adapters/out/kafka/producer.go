// Package kafka publishes order lifecycle events to a Kafka topic for
// downstream consumers such as notification and analytics services.
package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// statusChangedMessage is the wire format of an order status change.
type statusChangedMessage struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	OccurredAt  int64  `json:"occurred_at"`
}

// Producer publishes order events through a kafka-go writer. Messages are
// keyed by order ID so consumers see each order's changes in order.
type Producer struct {
	w *kafka.Writer
}

// NewProducer creates a producer for the given comma-separated broker list
// and topic.
func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishOrderStatusChanged publishes one status change event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	b, err := json.Marshal(statusChangedMessage{
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		Status:      event.Status,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
