package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand represents a buyer's request for a revision of a
// delivered order.
type RequestRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRequestRevisionCommand creates a command to request a revision.
// The reason's length limit and the revision quota are enforced by the
// aggregate.
func NewRequestRevisionCommand(orderID kernel.UUID, reason string) (RequestRevisionCommand, error) {
	cmd := RequestRevisionCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RequestRevisionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

// OrderID returns the order to revise.
func (c RequestRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the buyer's stated reason.
func (c RequestRevisionCommand) Reason() string {
	return c.reason
}

func (c *RequestRevisionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}
