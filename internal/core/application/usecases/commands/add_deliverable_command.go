package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddDeliverableCommandIsNotConstructed = errors.New(
	"AddDeliverableCommand must be created via NewAddDeliverableCommand constructor",
)

// AddDeliverableCommand represents a seller attaching work output to an
// order.
type AddDeliverableCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	kind    order.DeliverableKind
	content string

	guard guard.ConstructorGuard
}

// NewAddDeliverableCommand creates a command to attach a deliverable.
// The kind is the textual form name: "text", "file", or "link".
func NewAddDeliverableCommand(orderID kernel.UUID, kind, content string) (AddDeliverableCommand, error) {
	cmd := AddDeliverableCommand{
		content: content,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setKind(kind),
	); err != nil {
		return AddDeliverableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddDeliverableCommand) Validate() error {
	return c.guard.Validate(ErrAddDeliverableCommandIsNotConstructed)
}

// OrderID returns the order receiving the deliverable.
func (c AddDeliverableCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Kind returns the deliverable form.
func (c AddDeliverableCommand) Kind() order.DeliverableKind {
	return c.kind
}

// Content returns the deliverable body or location.
func (c AddDeliverableCommand) Content() string {
	return c.content
}

func (c *AddDeliverableCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AddDeliverableCommand) setKind(kind string) error {
	parsed, err := order.ParseDeliverableKind(kind)
	if err != nil {
		return err
	}
	c.kind = parsed
	return nil
}
