package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDisputeAlreadyOpened is returned when a second dispute is opened
	// on an order. A dispute case is created exactly once per order.
	ErrDisputeAlreadyOpened = errors.New("dispute has already been opened for this order")

	// ErrReviewAlreadyLeft is returned when a second review is left on an
	// order.
	ErrReviewAlreadyLeft = errors.New("review has already been left for this order")
)

// getSystemMessages returns the fixed system-message text per status.
// Statuses without an entry produce no thread message when reached.
func getSystemMessages() map[Status]string {
	return map[Status]string{
		Accepted:   "Order has been accepted by the seller",
		InProgress: "Work has started on your order",
		Delivered:  "Order has been delivered",
		Completed:  "Order has been marked as completed",
		Cancelled:  "Order has been cancelled",
		Disputed:   "A dispute has been raised for this order",
	}
}

// Order is the aggregate root of a single buyer-seller transaction. It owns
// the lifecycle status machine, the revision tracker, the payment subledger,
// the message thread, and the optional dispute case, and it is the only way
// those sub-states are mutated.
//
// Order maintains these invariants:
//   - the status moves only along the edges of the lifecycle graph
//   - revisions used never exceed the package snapshot quota
//   - each status-specific timestamp is set exactly once, when the status
//     is first reached, and never overwritten
//   - the order cannot complete unless the payment is paid, and cannot be
//     refunded unless the payment has been (partially) refunded
//   - the order number is assigned at creation and never regenerated
//
// Orders are never hard-deleted: terminal orders are retained for audit.
type Order struct {
	id          kernel.UUID
	orderNumber string

	buyerID   kernel.UUID
	sellerID  kernel.UUID
	serviceID kernel.UUID

	snapshot     PackageSnapshot
	requirements []Requirement

	status  Status
	version int

	createdAt   time.Time
	dueDate     time.Time
	acceptedAt  *time.Time
	startedAt   *time.Time
	deliveredAt *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	deliverables []Deliverable
	messages     MessageThread
	revisions    RevisionTracker
	payment      PaymentSubledger
	dispute      *DisputeCase
	review       *Review

	isConstructed bool
}

// NewOrder creates a pending order with the package snapshot taken at
// checkout. The due date defaults to createdAt plus the snapshot's delivery
// time when not supplied explicitly.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	serviceID kernel.UUID,
	snapshot PackageSnapshot,
	paymentMethod PaymentMethod,
	requirements []Requirement,
	createdAt time.Time,
	dueDate *time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     createdAt,
		messages:      NewMessageThread(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setBuyerID(buyerID),
		order.setSellerID(sellerID),
		order.setServiceID(serviceID),
		order.setSnapshot(snapshot),
	); err != nil {
		return nil, err
	}

	if order.buyerID.IsEqual(order.sellerID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("seller id",
			fmt.Errorf("buyer and seller must be different users"))
	}

	payment, err := NewPaymentSubledger(paymentMethod, snapshot.Price())
	if err != nil {
		return nil, err
	}
	order.payment = payment

	order.revisions = NewRevisionTracker(snapshot.RevisionQuota())
	order.requirements = make([]Requirement, len(requirements))
	copy(order.requirements, requirements)

	if dueDate != nil {
		order.dueDate = *dueDate
	} else {
		order.dueDate = createdAt.AddDate(0, 0, snapshot.DeliveryDays())
	}

	return order, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain model.
type RestoreOrderParams struct {
	ID           kernel.UUID
	OrderNumber  string
	BuyerID      kernel.UUID
	SellerID     kernel.UUID
	ServiceID    kernel.UUID
	Snapshot     PackageSnapshot
	Requirements []Requirement
	Status       Status
	Version      int
	CreatedAt    time.Time
	DueDate      time.Time
	AcceptedAt   *time.Time
	StartedAt    *time.Time
	DeliveredAt  *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	Deliverables []Deliverable
	Messages     MessageThread
	Revisions    RevisionTracker
	Payment      PaymentSubledger
	Dispute      *DisputeCase
	Review       *Review
}

// RestoreOrder reconstructs an order from persistence, re-validating its
// identity, status, and version.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		status:        params.Status,
		version:       params.Version,
		createdAt:     params.CreatedAt,
		dueDate:       params.DueDate,
		acceptedAt:    params.AcceptedAt,
		startedAt:     params.StartedAt,
		deliveredAt:   params.DeliveredAt,
		completedAt:   params.CompletedAt,
		cancelledAt:   params.CancelledAt,
		messages:      params.Messages,
		revisions:     params.Revisions,
		payment:       params.Payment,
		dispute:       params.Dispute,
		review:        params.Review,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setOrderNumber(params.OrderNumber),
		order.setBuyerID(params.BuyerID),
		order.setSellerID(params.SellerID),
		order.setServiceID(params.ServiceID),
		order.setSnapshot(params.Snapshot),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not at least 1", params.Version))
	}

	order.requirements = make([]Requirement, len(params.Requirements))
	copy(order.requirements, params.Requirements)
	order.deliverables = make([]Deliverable, len(params.Deliverables))
	copy(order.deliverables, params.Deliverables)

	return order, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Transition moves the order to target along the lifecycle graph, sets the
// matching timestamp the first time that status is reached, and appends the
// fixed system message for the status. The order of side effects is
// validate, then mutate status and timestamp, then append the message; any
// validation failure aborts before the first mutation, so the order is
// unchanged from the caller's perspective.
//
// Fails with InvalidTransitionError for a disallowed edge, including a
// transition to the current status, a terminal current status, an unpaid
// completion, an unrefunded refund, or an unresolved dispute.
func (o *Order) Transition(target Status, actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := o.validateTransition(target); err != nil {
		return err
	}

	if target == Disputed && o.dispute == nil {
		// The dispute case is normally attached by OpenDispute with the
		// initiator's reason; a bare transition still gets a case so the
		// disputed invariant holds.
		dispute, err := NewDisputeCase(actorID, "unspecified", "", now)
		if err != nil {
			return err
		}
		o.dispute = dispute
	}

	o.applyTransition(target, now)
	return nil
}

// validateTransition checks the lifecycle edge and the payment and dispute
// gates without mutating anything.
func (o *Order) validateTransition(target Status) error {
	if _, err := o.status.TransitionTo(target); err != nil {
		return err
	}

	if target == Completed && o.payment.Status() != Paid {
		return &InvalidTransitionError{
			From:   o.status,
			To:     target,
			Reason: fmt.Sprintf("payment is %s, must be paid", o.payment.Status()),
		}
	}
	if target == Refunded && !o.payment.IsRefunded() {
		return &InvalidTransitionError{
			From:   o.status,
			To:     target,
			Reason: fmt.Sprintf("payment is %s, must be refunded", o.payment.Status()),
		}
	}
	if o.status == Disputed && (o.dispute == nil || !o.dispute.IsResolved()) {
		return &InvalidTransitionError{
			From:   o.status,
			To:     target,
			Reason: "dispute must be resolved first",
		}
	}

	return nil
}

// applyTransition performs the already-validated status change.
func (o *Order) applyTransition(target Status, now time.Time) {
	o.status = target
	o.setStatusTimestamp(target, now)

	if text, ok := getSystemMessages()[target]; ok {
		o.messages.appendSystem(text, now)
	}
}

// setStatusTimestamp sets the timestamp matching the status, only the first
// time that status is reached.
func (o *Order) setStatusTimestamp(status Status, now time.Time) {
	stamp := func(field **time.Time) {
		if *field == nil {
			at := now
			*field = &at
		}
	}

	switch status {
	case Accepted:
		stamp(&o.acceptedAt)
	case InProgress:
		stamp(&o.startedAt)
	case Delivered:
		stamp(&o.deliveredAt)
	case Completed:
		stamp(&o.completedAt)
	case Cancelled:
		stamp(&o.cancelledAt)
	}
}

// AddMessage appends a user message to the thread. It has no status side
// effects and succeeds from any status; empty text fails validation.
func (o *Order) AddMessage(senderID kernel.UUID, text string, attachments []Attachment, now time.Time) error {
	return o.messages.Append(senderID, text, attachments, now)
}

// RequestRevision consumes one revision from the quota and moves the order
// to revision-requested. A revision request is always legal from delivered
// or revision-delivered and nowhere else. Fails with
// RevisionQuotaExhaustedError when the quota is used up, leaving the order
// unchanged.
func (o *Order) RequestRevision(reason string, now time.Time) error {
	if o.status != Delivered && o.status != RevisionDelivered {
		return &InvalidTransitionError{From: o.status, To: RevisionRequested}
	}
	if err := o.revisions.Consume(reason, now); err != nil {
		return err
	}

	o.status = RevisionRequested
	return nil
}

// FulfillRevision marks the most recent open revision entry as delivered.
// Fails with an ObjectNotFoundError when no open entry exists.
func (o *Order) FulfillRevision(now time.Time) error {
	return o.revisions.Fulfill(now)
}

// AddDeliverable appends a delivery record. Legal only while work can be
// delivered: in progress, delivered, or during the revision loop.
func (o *Order) AddDeliverable(kind DeliverableKind, content string, now time.Time) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if content == "" {
		return errs.NewValueIsRequiredError("deliverable content")
	}

	switch o.status {
	case InProgress, Delivered, RevisionRequested, RevisionDelivered:
	default:
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("cannot add a deliverable to a %s order", o.status))
	}

	o.deliverables = append(o.deliverables, Deliverable{
		kind:        kind,
		content:     content,
		deliveredAt: now,
	})
	return nil
}

// OpenDispute creates the order's dispute case and transitions the order to
// disputed in one step. The case is created exactly once; a second call
// fails with ErrDisputeAlreadyOpened.
func (o *Order) OpenDispute(initiatorID kernel.UUID, reason, description string, now time.Time) error {
	if o.dispute != nil {
		return ErrDisputeAlreadyOpened
	}
	if err := o.validateTransition(Disputed); err != nil {
		return err
	}

	dispute, err := NewDisputeCase(initiatorID, reason, description, now)
	if err != nil {
		return err
	}

	o.dispute = dispute
	o.applyTransition(Disputed, now)
	return nil
}

// ResolveDispute records the resolution on the dispute case. It does not
// move the order out of disputed: that is a separate Transition call by the
// resolving actor.
func (o *Order) ResolveDispute(resolution string, resolverID kernel.UUID, now time.Time) error {
	if o.dispute == nil {
		return errs.NewObjectNotFoundError("dispute", o.orderNumber)
	}
	return o.dispute.Resolve(resolution, resolverID, now)
}

// MarkPaymentPaid records a successful charge from the payment processor.
func (o *Order) MarkPaymentPaid(transactionID string, now time.Time) error {
	return o.payment.MarkPaid(transactionID, now)
}

// MarkPaymentFailed records a failed charge from the payment processor.
func (o *Order) MarkPaymentFailed() error {
	return o.payment.MarkFailed()
}

// RefundPayment returns money to the buyer. Refunding the payment does not
// by itself move the order to refunded; that is a separate Transition call.
func (o *Order) RefundPayment(amount kernel.Money, now time.Time) error {
	return o.payment.Refund(amount, now)
}

// LeaveReview records the buyer's one-time rating. Legal only on a
// completed order.
func (o *Order) LeaveReview(rating int, comment string, now time.Time) error {
	if o.status != Completed {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("cannot review a %s order", o.status))
	}
	if o.review != nil {
		return ErrReviewAlreadyLeft
	}

	review, err := NewReview(rating, comment, now)
	if err != nil {
		return err
	}

	o.review = &review
	return nil
}

// IsOverdue reports whether a non-terminal order has passed its due date.
func (o *Order) IsOverdue(now time.Time) bool {
	return !o.status.IsTerminal() && now.After(o.dueDate)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// BuyerID returns the buying user.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SellerID returns the selling user.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// ServiceID returns the purchased service.
func (o *Order) ServiceID() kernel.UUID {
	return o.serviceID
}

// PackageSnapshot returns the immutable package copy taken at creation.
func (o *Order) PackageSnapshot() PackageSnapshot {
	return o.snapshot
}

// Requirements returns a copy of the checkout requirements.
func (o *Order) Requirements() []Requirement {
	requirements := make([]Requirement, len(o.requirements))
	copy(requirements, o.requirements)
	return requirements
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic-concurrency version of the loaded record.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DueDate returns when delivery is due.
func (o *Order) DueDate() time.Time {
	return o.dueDate
}

// AcceptedAt returns when the order was first accepted, or nil.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// StartedAt returns when work first started, or nil.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// DeliveredAt returns when the order was first delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CompletedAt returns when the order was completed, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// Deliverables returns a copy of the ordered delivery records.
func (o *Order) Deliverables() []Deliverable {
	deliverables := make([]Deliverable, len(o.deliverables))
	copy(deliverables, o.deliverables)
	return deliverables
}

// Messages returns the order's message thread.
func (o *Order) Messages() MessageThread {
	return o.messages
}

// Revisions returns the order's revision tracker state.
func (o *Order) Revisions() RevisionTracker {
	return o.revisions
}

// Payment returns the order's payment subledger state.
func (o *Order) Payment() PaymentSubledger {
	return o.payment
}

// Dispute returns a copy of the dispute case, or nil when no dispute has
// been opened.
func (o *Order) Dispute() *DisputeCase {
	if o.dispute == nil {
		return nil
	}
	dispute := *o.dispute
	return &dispute
}

// Review returns a copy of the buyer's review, or nil.
func (o *Order) Review() *Review {
	if o.review == nil {
		return nil
	}
	review := *o.review
	return &review
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if err := ValidateOrderNumber(orderNumber); err != nil {
		return err
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer id", err)
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller id", err)
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service id", err)
	}
	o.serviceID = serviceID
	return nil
}

func (o *Order) setSnapshot(snapshot PackageSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	o.snapshot = snapshot
	return nil
}
