package commands

import (
	"context"
	"time"
)

// RecordPaymentCommandHandler applies a processor webhook to the order's
// payment subledger. The webhook only settles money; it never changes the
// order's lifecycle status.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment webhooks.
func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the payment outcome command.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Outcome() {
	case PaymentOutcomePaid:
		err = aggregate.MarkPaymentPaid(cmd.TransactionID(), time.Now().UTC())
	case PaymentOutcomeFailed:
		err = aggregate.MarkPaymentFailed()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
