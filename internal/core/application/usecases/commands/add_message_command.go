package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddMessageCommandIsNotConstructed = errors.New(
	"AddMessageCommand must be created via NewAddMessageCommand constructor",
)

// AttachmentInput carries one message attachment.
type AttachmentInput struct {
	Filename string
	URL      string
	FileSize int64
}

// AddMessageCommand represents a request to post a message on an order's
// thread. Messages are allowed in any order status.
type AddMessageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	senderID    kernel.UUID
	text        string
	attachments []AttachmentInput

	guard guard.ConstructorGuard
}

// NewAddMessageCommand creates a command to post an order message.
// Length limits on the text are enforced by the message thread itself.
func NewAddMessageCommand(
	orderID, senderID kernel.UUID,
	text string,
	attachments []AttachmentInput,
) (AddMessageCommand, error) {
	cmd := AddMessageCommand{
		text:        text,
		attachments: attachments,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSenderID(senderID),
	); err != nil {
		return AddMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddMessageCommand) Validate() error {
	return c.guard.Validate(ErrAddMessageCommandIsNotConstructed)
}

// OrderID returns the order whose thread receives the message.
func (c AddMessageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SenderID returns the message author.
func (c AddMessageCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Text returns the message body.
func (c AddMessageCommand) Text() string {
	return c.text
}

// Attachments returns the message attachments.
func (c AddMessageCommand) Attachments() []order.Attachment {
	attachments := make([]order.Attachment, 0, len(c.attachments))
	for _, a := range c.attachments {
		attachments = append(attachments, order.Attachment{
			Filename: a.Filename,
			URL:      a.URL,
			FileSize: a.FileSize,
		})
	}
	return attachments
}

func (c *AddMessageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AddMessageCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sender id", err)
	}
	c.senderID = senderID
	return nil
}
