package commands

import (
	"context"
	"time"
)

// RequestRevisionCommandHandler handles revision requests. The aggregate
// spends one unit of the package's revision quota and moves the order back
// into the revision loop.
type RequestRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRequestRevisionCommandHandler creates a handler for revision requests.
func NewRequestRevisionCommandHandler(uowFactory OrderUoWFactory) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{uowFactory: uowFactory}
}

// Handle processes the revision request command.
func (h *RequestRevisionCommandHandler) Handle(ctx context.Context, cmd RequestRevisionCommand) error {
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

	if err = aggregate.RequestRevision(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
