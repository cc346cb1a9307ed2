package commands

import (
	"context"
	"time"
)

// ResolveDisputeCommandHandler records a dispute's outcome. Moving the
// order out of disputed afterwards is a separate transition by the
// resolving actor.
type ResolveDisputeCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolution.
func NewResolveDisputeCommandHandler(uowFactory OrderUoWFactory) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{uowFactory: uowFactory}
}

// Handle processes the resolve dispute command.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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

	if err = aggregate.ResolveDispute(cmd.Resolution(), cmd.ResolverID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
