package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand represents an arbiter recording the outcome of an
// order's dispute.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	resolverID kernel.UUID
	resolution string

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command to resolve a dispute.
func NewResolveDisputeCommand(orderID, resolverID kernel.UUID, resolution string) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setResolverID(resolverID),
		cmd.setResolution(resolution),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// OrderID returns the disputed order.
func (c ResolveDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ResolverID returns the arbiter recording the outcome.
func (c ResolveDisputeCommand) ResolverID() kernel.UUID {
	return c.resolverID
}

// Resolution returns the recorded outcome.
func (c ResolveDisputeCommand) Resolution() string {
	return c.resolution
}

func (c *ResolveDisputeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *ResolveDisputeCommand) setResolverID(resolverID kernel.UUID) error {
	if err := resolverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("resolver id", err)
	}
	c.resolverID = resolverID
	return nil
}

func (c *ResolveDisputeCommand) setResolution(resolution string) error {
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	c.resolution = resolution
	return nil
}
