package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery retrieves active orders whose due date has passed.
// Terminal orders are never overdue.
type GetOverdueOrdersQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for orders overdue as of the
// given instant.
func NewGetOverdueOrdersQuery(asOf time.Time) GetOverdueOrdersQuery {
	return GetOverdueOrdersQuery{asOf: asOf, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// AsOf returns the instant overdue-ness is judged against.
func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}

// GetOverdueOrdersQueryResponse represents one overdue order.
type GetOverdueOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	BuyerID     kernel.UUID
	SellerID    kernel.UUID
	Status      string
	DueDate     time.Time
}
