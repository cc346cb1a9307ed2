package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
// A rejected transition is a business-rule violation and is never retried.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports a lifecycle edge that is not allowed from
// the order's current status. Reason carries the specific gate that blocked
// an otherwise valid edge, such as an unsettled payment.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a marketplace order.
// It implements a state machine over the graph:
//
//	pending ──> accepted ──> in-progress ──> delivered ──> completed
//	                                           │    ▲
//	                                           ▼    │
//	                          revision-requested ──> revision-delivered
//
// with side exits to cancelled, disputed, and refunded from most
// non-terminal states. Completed, cancelled, and refunded are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is placed and waiting for
	// the seller to accept it.
	Pending

	// Accepted indicates the seller has accepted the order.
	Accepted

	// InProgress indicates the seller has started working on the order.
	InProgress

	// Delivered indicates the seller has delivered the initial work.
	Delivered

	// RevisionRequested indicates the buyer has asked for rework.
	RevisionRequested

	// RevisionDelivered indicates the seller has delivered the requested
	// revision.
	RevisionDelivered

	// Completed indicates the buyer accepted the work. Terminal.
	Completed

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled

	// Disputed indicates the order is in an open dispute.
	Disputed

	// Refunded indicates the payment was returned to the buyer. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Pending:           "pending",
		Accepted:          "accepted",
		InProgress:        "in-progress",
		Delivered:         "delivered",
		RevisionRequested: "revision-requested",
		RevisionDelivered: "revision-delivered",
		Completed:         "completed",
		Cancelled:         "cancelled",
		Disputed:          "disputed",
		Refunded:          "refunded",
	}
}

// validTransitions returns the full edge table of the lifecycle graph.
// Requesting a revision and opening a dispute go through their own
// operations on the aggregate, but their edges are listed here so the
// general validator agrees with them.
func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:           {Accepted, Cancelled},
		Accepted:          {InProgress, Cancelled, Disputed, Refunded},
		InProgress:        {Delivered, Cancelled, Disputed, Refunded},
		Delivered:         {RevisionRequested, Completed, Disputed, Refunded},
		RevisionRequested: {RevisionDelivered, Cancelled, Disputed, Refunded},
		RevisionDelivered: {RevisionRequested, Completed, Disputed, Refunded},
		Disputed:          {Completed, Cancelled, Refunded},
		Completed:         {},
		Cancelled:         {},
		Refunded:          {},
	}
}

// ParseStatus converts the wire representation ("in-progress",
// "revision-requested", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := validTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Terminal orders are retained for audit, never deleted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Refunded
}

// CanTransitionTo reports whether the lifecycle graph contains an edge from
// s to target. Payment and dispute gates are checked by the aggregate on
// top of this.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the edge s -> target exists, or an
// InvalidTransitionError otherwise. A transition to the current status is
// not a valid edge and is rejected, not treated as a no-op.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}
