package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRefundPaymentCommandIsNotConstructed = errors.New(
	"RefundPaymentCommand must be created via NewRefundPaymentCommand constructor",
)

// RefundPaymentCommand represents a full or partial refund of an order's
// payment.
type RefundPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewRefundPaymentCommand creates a command to refund part or all of an
// order's payment. The amount is in minor currency units; whether it fits
// within the refundable remainder is decided by the subledger.
func NewRefundPaymentCommand(orderID kernel.UUID, amount int64) (RefundPaymentCommand, error) {
	cmd := RefundPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
	); err != nil {
		return RefundPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRefundPaymentCommandIsNotConstructed)
}

// OrderID returns the order to refund.
func (c RefundPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the refund amount.
func (c RefundPaymentCommand) Amount() kernel.Money {
	return c.amount
}

func (c *RefundPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *RefundPaymentCommand) setAmount(amount int64) error {
	money, err := kernel.NewMoney(amount)
	if err != nil {
		return err
	}
	c.amount = money
	return nil
}
