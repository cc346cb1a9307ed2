package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// OrderStatusChangedEvent is emitted after an order moves to a new status.
type OrderStatusChangedEvent struct {
	OrderID     string
	OrderNumber string
	Status      string
	OccurredAt  int64
}

// EventPublisher publishes order lifecycle events to downstream consumers.
// Publishing is best-effort from the caller's point of view: a failed
// publish must not roll back the committed state change.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}

// NewOrderStatusChangedEvent builds the event payload from an aggregate.
func NewOrderStatusChangedEvent(aggregate *order.Order, occurredAt int64) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status().String(),
		OccurredAt:  occurredAt,
	}
}
