// Package queries contains read-only operations over the persisted order
// state. Query handlers read the database directly and return plain view
// structs, bypassing the domain model.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full view of a single order.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PackageSnapshotView is the frozen package copy of an order view.
type PackageSnapshotView struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	DeliveryDays  int      `json:"delivery_days"`
	RevisionQuota int      `json:"revision_quota"`
	Features      []string `json:"features"`
}

// RequirementView is one checkout requirement of an order view.
type RequirementView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Kind     string `json:"kind"`
}

// DeliverableView is one delivery record of an order view.
type DeliverableView struct {
	Kind        string    `json:"kind"`
	Content     string    `json:"content"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// RevisionEntryView is one revision request of an order view.
type RevisionEntryView struct {
	RequestedAt time.Time  `json:"requested_at"`
	Reason      string     `json:"reason"`
	DeliveredAt *time.Time `json:"delivered_at"`
	IsCompleted bool       `json:"is_completed"`
}

// RevisionsView is the revision tracker state of an order view.
type RevisionsView struct {
	Quota   int                 `json:"quota"`
	Entries []RevisionEntryView `json:"entries"`
}

// PaymentView is the payment subledger state of an order view.
type PaymentView struct {
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id"`
	Total         int64      `json:"total"`
	PaidAt        *time.Time `json:"paid_at"`
	RefundedAt    *time.Time `json:"refunded_at"`
	RefundAmount  int64      `json:"refund_amount"`
}

// DisputeView is the dispute case of an order view.
type DisputeView struct {
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
	InitiatorID string     `json:"initiator_id"`
	OpenedAt    time.Time  `json:"opened_at"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution"`
	ResolverID  *string    `json:"resolver_id"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// ReviewView is the buyer's review of an order view.
type ReviewView struct {
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	BuyerID      kernel.UUID
	SellerID     kernel.UUID
	ServiceID    kernel.UUID
	Status       string
	Version      int
	Snapshot     PackageSnapshotView
	Requirements []RequirementView
	Deliverables []DeliverableView
	Revisions    RevisionsView
	Payment      PaymentView
	Dispute      *DisputeView
	Review       *ReviewView
	CreatedAt    time.Time
	DueDate      time.Time
	AcceptedAt   *time.Time
	StartedAt    *time.Time
	DeliveredAt  *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}
