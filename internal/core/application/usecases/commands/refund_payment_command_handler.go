package commands

import (
	"context"
	"time"
)

// RefundPaymentCommandHandler returns money to the buyer on the order's
// payment subledger. Moving the order to refunded status afterwards is a
// separate transition.
type RefundPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRefundPaymentCommandHandler creates a handler for payment refunds.
func NewRefundPaymentCommandHandler(uowFactory OrderUoWFactory) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the refund command.
func (h *RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) error {
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

	if err = aggregate.RefundPayment(cmd.Amount(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
