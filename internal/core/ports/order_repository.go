package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Fails with a
	// ValueIsNotUniqueError when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using
	// optimistic locking on its version. Fails with a
	// ConcurrentModificationError when the stored version has moved on.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetOverdue retrieves non-terminal orders whose due date has passed.
	GetOverdue(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountActive returns the number of orders not in a terminal status.
	CountActive(ctx context.Context) (int64, error)
}
