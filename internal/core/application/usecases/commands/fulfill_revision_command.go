package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrFulfillRevisionCommandIsNotConstructed = errors.New(
	"FulfillRevisionCommand must be created via NewFulfillRevisionCommand constructor",
)

// FulfillRevisionCommand represents a seller marking the open revision
// request as addressed.
type FulfillRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFulfillRevisionCommand creates a command to fulfill a revision.
func NewFulfillRevisionCommand(orderID kernel.UUID) (FulfillRevisionCommand, error) {
	cmd := FulfillRevisionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return FulfillRevisionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillRevisionCommand) Validate() error {
	return c.guard.Validate(ErrFulfillRevisionCommandIsNotConstructed)
}

// OrderID returns the order whose revision is fulfilled.
func (c FulfillRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *FulfillRevisionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}
