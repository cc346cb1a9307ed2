package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrOpenDisputeCommandIsNotConstructed = errors.New(
	"OpenDisputeCommand must be created via NewOpenDisputeCommand constructor",
)

// OpenDisputeCommand represents a party escalating an order into a dispute.
type OpenDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	initiatorID kernel.UUID
	reason      string
	description string

	guard guard.ConstructorGuard
}

// NewOpenDisputeCommand creates a command to open a dispute on an order.
func NewOpenDisputeCommand(
	orderID, initiatorID kernel.UUID,
	reason, description string,
) (OpenDisputeCommand, error) {
	cmd := OpenDisputeCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setInitiatorID(initiatorID),
		cmd.setReason(reason),
	); err != nil {
		return OpenDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenDisputeCommand) Validate() error {
	return c.guard.Validate(ErrOpenDisputeCommandIsNotConstructed)
}

// OrderID returns the disputed order.
func (c OpenDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InitiatorID returns the user opening the dispute.
func (c OpenDisputeCommand) InitiatorID() kernel.UUID {
	return c.initiatorID
}

// Reason returns the dispute category.
func (c OpenDisputeCommand) Reason() string {
	return c.reason
}

// Description returns the free-text account of the problem.
func (c OpenDisputeCommand) Description() string {
	return c.description
}

func (c *OpenDisputeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *OpenDisputeCommand) setInitiatorID(initiatorID kernel.UUID) error {
	if err := initiatorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("initiator id", err)
	}
	c.initiatorID = initiatorID
	return nil
}

func (c *OpenDisputeCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("dispute reason")
	}
	c.reason = reason
	return nil
}
