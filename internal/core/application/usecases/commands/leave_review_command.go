package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrLeaveReviewCommandIsNotConstructed = errors.New(
	"LeaveReviewCommand must be created via NewLeaveReviewCommand constructor",
)

// LeaveReviewCommand represents the buyer rating a completed order.
type LeaveReviewCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reviewerID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

// NewLeaveReviewCommand creates a command to leave a review.
// The rating range and the completed-order rule are enforced by the
// aggregate; only the buyer may review, which the handler checks.
func NewLeaveReviewCommand(orderID, reviewerID kernel.UUID, rating int, comment string) (LeaveReviewCommand, error) {
	cmd := LeaveReviewCommand{
		rating:  rating,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReviewerID(reviewerID),
	); err != nil {
		return LeaveReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaveReviewCommand) Validate() error {
	return c.guard.Validate(ErrLeaveReviewCommandIsNotConstructed)
}

// OrderID returns the reviewed order.
func (c LeaveReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReviewerID returns the user leaving the review.
func (c LeaveReviewCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Rating returns the star rating.
func (c LeaveReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the optional review text.
func (c LeaveReviewCommand) Comment() string {
	return c.comment
}

func (c *LeaveReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *LeaveReviewCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("reviewer id", err)
	}
	c.reviewerID = reviewerID
	return nil
}
