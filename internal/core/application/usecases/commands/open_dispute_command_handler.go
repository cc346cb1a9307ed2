package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"

	"go.uber.org/zap"
)

// OpenDisputeCommandHandler opens a dispute case and moves the order to
// disputed in one transaction. The resulting status change is published
// like any other transition.
type OpenDisputeCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewOpenDisputeCommandHandler creates a handler for opening disputes.
// The publisher may be nil when event publishing is disabled.
func NewOpenDisputeCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) OpenDisputeCommandHandler {
	return OpenDisputeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the open dispute command.
func (h *OpenDisputeCommandHandler) Handle(ctx context.Context, cmd OpenDisputeCommand) error {
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

	now := time.Now().UTC()
	if err = aggregate.OpenDispute(cmd.InitiatorID(), cmd.Reason(), cmd.Description(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		event := ports.NewOrderStatusChangedEvent(aggregate, now.UnixMilli())
		if err = h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			h.logger.Warn("failed to publish order status change",
				zap.String("order_id", event.OrderID),
				zap.String("status", event.Status),
				zap.Error(err))
		}
	}

	return nil
}
