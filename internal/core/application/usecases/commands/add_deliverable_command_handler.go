package commands

import (
	"context"
	"time"
)

// AddDeliverableCommandHandler attaches a deliverable to an order.
type AddDeliverableCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddDeliverableCommandHandler creates a handler for attaching deliverables.
func NewAddDeliverableCommandHandler(uowFactory OrderUoWFactory) AddDeliverableCommandHandler {
	return AddDeliverableCommandHandler{uowFactory: uowFactory}
}

// Handle processes the add deliverable command.
func (h *AddDeliverableCommandHandler) Handle(ctx context.Context, cmd AddDeliverableCommand) error {
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

	if err = aggregate.AddDeliverable(cmd.Kind(), cmd.Content(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
