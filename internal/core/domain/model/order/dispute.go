package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrInvalidDisputeTransition is the sentinel wrapped by
// InvalidDisputeTransitionError.
var ErrInvalidDisputeTransition = errors.New("invalid dispute transition")

// InvalidDisputeTransitionError reports a dispute operation that is not
// legal from the case's current resolution status.
type InvalidDisputeTransitionError struct {
	From      DisputeStatus
	Operation string
}

func (e *InvalidDisputeTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidDisputeTransition, e.Operation, e.From)
}

func (e *InvalidDisputeTransitionError) Unwrap() error {
	return ErrInvalidDisputeTransition
}

// DisputeStatus is the resolution state of a dispute case.
type DisputeStatus int

const (
	DisputeStatusUnknown DisputeStatus = iota
	DisputeOpen
	DisputeUnderReview
	DisputeResolved
	DisputeClosed
)

func getDisputeStatusStrings() map[DisputeStatus]string {
	return map[DisputeStatus]string{
		DisputeStatusUnknown: "unknown",
		DisputeOpen:          "open",
		DisputeUnderReview:   "under-review",
		DisputeResolved:      "resolved",
		DisputeClosed:        "closed",
	}
}

// ParseDisputeStatus converts the wire representation into a DisputeStatus.
func ParseDisputeStatus(s string) (DisputeStatus, error) {
	for status, str := range getDisputeStatusStrings() {
		if str == s && status != DisputeStatusUnknown {
			return status, nil
		}
	}
	return DisputeStatusUnknown, errs.NewValueIsInvalidErrorWithCause("dispute status",
		fmt.Errorf("%q is not a valid dispute status", s))
}

// Validate checks that the status is one of the defined dispute states.
func (s DisputeStatus) Validate() error {
	if s == DisputeStatusUnknown {
		return errs.NewValueIsRequiredError("dispute status")
	}
	if _, ok := getDisputeStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("dispute status",
			fmt.Errorf("%d is not a valid dispute status", s))
	}
	return nil
}

// String returns the wire representation of the dispute status.
func (s DisputeStatus) String() string {
	if str, ok := getDisputeStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DisputeCase is the escalation sub-record of an order, created exactly once
// on the first entry into disputed status. Resolving the case does not move
// the parent order by itself: leaving disputed is a separate, explicit
// transition by the resolving actor, so the two state machines stay
// decoupled but causally ordered.
type DisputeCase struct {
	reason      string
	description string
	initiatorID kernel.UUID
	openedAt    time.Time
	status      DisputeStatus
	resolution  string
	resolverID  *kernel.UUID
	resolvedAt  *time.Time
}

// NewDisputeCase opens a dispute case.
func NewDisputeCase(initiatorID kernel.UUID, reason, description string, now time.Time) (*DisputeCase, error) {
	if err := initiatorID.Validate(); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("dispute reason")
	}

	return &DisputeCase{
		reason:      reason,
		description: description,
		initiatorID: initiatorID,
		openedAt:    now,
		status:      DisputeOpen,
	}, nil
}

// RestoreDisputeCase reconstructs a case from persistence.
func RestoreDisputeCase(
	initiatorID kernel.UUID,
	reason string,
	description string,
	openedAt time.Time,
	status DisputeStatus,
	resolution string,
	resolverID *kernel.UUID,
	resolvedAt *time.Time,
) (*DisputeCase, error) {
	if err := errors.Join(initiatorID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &DisputeCase{
		reason:      reason,
		description: description,
		initiatorID: initiatorID,
		openedAt:    openedAt,
		status:      status,
		resolution:  resolution,
		resolverID:  resolverID,
		resolvedAt:  resolvedAt,
	}, nil
}

// MarkUnderReview moves an open case into review. Legal only from open.
func (d *DisputeCase) MarkUnderReview() error {
	if d.status != DisputeOpen {
		return &InvalidDisputeTransitionError{From: d.status, Operation: "mark under review"}
	}

	d.status = DisputeUnderReview
	return nil
}

// Resolve records the resolution. Legal while the case is open or under
// review; resolved and closed cases reject further resolution.
func (d *DisputeCase) Resolve(resolution string, resolverID kernel.UUID, now time.Time) error {
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if err := resolverID.Validate(); err != nil {
		return err
	}
	if d.status != DisputeOpen && d.status != DisputeUnderReview {
		return &InvalidDisputeTransitionError{From: d.status, Operation: "resolve"}
	}

	d.status = DisputeResolved
	d.resolution = resolution
	resolver := resolverID
	d.resolverID = &resolver
	resolvedAt := now
	d.resolvedAt = &resolvedAt
	return nil
}

// IsResolved reports whether the case has been resolved.
func (d *DisputeCase) IsResolved() bool {
	return d.status == DisputeResolved
}

// Reason returns why the dispute was opened.
func (d *DisputeCase) Reason() string {
	return d.reason
}

// Description returns the free-text elaboration of the dispute.
func (d *DisputeCase) Description() string {
	return d.description
}

// InitiatorID returns the user who opened the dispute.
func (d *DisputeCase) InitiatorID() kernel.UUID {
	return d.initiatorID
}

// OpenedAt returns when the dispute was opened.
func (d *DisputeCase) OpenedAt() time.Time {
	return d.openedAt
}

// Status returns the resolution status of the case.
func (d *DisputeCase) Status() DisputeStatus {
	return d.status
}

// Resolution returns the resolution text, empty until resolved.
func (d *DisputeCase) Resolution() string {
	return d.resolution
}

// ResolverID returns the resolving actor, or nil until resolved.
func (d *DisputeCase) ResolverID() *kernel.UUID {
	return d.resolverID
}

// ResolvedAt returns when the case was resolved, or nil.
func (d *DisputeCase) ResolvedAt() *time.Time {
	return d.resolvedAt
}
