package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// PaymentOutcome is the processor's verdict delivered on the webhook.
type PaymentOutcome string

const (
	PaymentOutcomePaid   PaymentOutcome = "paid"
	PaymentOutcomeFailed PaymentOutcome = "failed"
)

// RecordPaymentCommand represents a payment processor webhook reporting the
// outcome of a charge for an order.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	outcome       PaymentOutcome
	transactionID string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a charge outcome.
// A paid outcome requires the processor's transaction reference.
func NewRecordPaymentCommand(orderID kernel.UUID, outcome, transactionID string) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	if cmd.outcome == PaymentOutcomePaid && transactionID == "" {
		return RecordPaymentCommand{}, errs.NewValueIsRequiredError("transaction id")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the order the charge belongs to.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Outcome returns the processor's verdict.
func (c RecordPaymentCommand) Outcome() PaymentOutcome {
	return c.outcome
}

// TransactionID returns the processor's transaction reference.
func (c RecordPaymentCommand) TransactionID() string {
	return c.transactionID
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setOutcome(outcome string) error {
	switch PaymentOutcome(outcome) {
	case PaymentOutcomePaid, PaymentOutcomeFailed:
		c.outcome = PaymentOutcome(outcome)
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment outcome",
			fmt.Errorf("%q is not a valid payment outcome", outcome))
	}
}
