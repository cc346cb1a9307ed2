package commands

import (
	"context"
	"time"
)

// AddMessageCommandHandler posts a message to an order's thread.
type AddMessageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddMessageCommandHandler creates a handler for posting order messages.
func NewAddMessageCommandHandler(uowFactory OrderUoWFactory) AddMessageCommandHandler {
	return AddMessageCommandHandler{uowFactory: uowFactory}
}

// Handle processes the add message command.
func (h *AddMessageCommandHandler) Handle(ctx context.Context, cmd AddMessageCommand) error {
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

	if err = aggregate.AddMessage(cmd.SenderID(), cmd.Text(), cmd.Attachments(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
