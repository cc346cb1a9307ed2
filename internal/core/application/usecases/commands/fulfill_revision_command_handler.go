package commands

import (
	"context"
	"time"
)

// FulfillRevisionCommandHandler marks the most recent open revision entry
// as delivered. It does not change the order's status; redelivery is a
// separate transition.
type FulfillRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewFulfillRevisionCommandHandler creates a handler for revision fulfillment.
func NewFulfillRevisionCommandHandler(uowFactory OrderUoWFactory) FulfillRevisionCommandHandler {
	return FulfillRevisionCommandHandler{uowFactory: uowFactory}
}

// Handle processes the fulfill revision command.
func (h *FulfillRevisionCommandHandler) Handle(ctx context.Context, cmd FulfillRevisionCommand) error {
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

	if err = aggregate.FulfillRevision(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
