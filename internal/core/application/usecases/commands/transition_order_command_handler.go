package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"

	"go.uber.org/zap"
)

// TransitionOrderCommandHandler handles order status changes.
// Loads the aggregate, applies the transition through the domain model, and
// persists it with optimistic locking. After a successful commit the status
// change is published for downstream consumers; a publish failure is logged
// and never fails the command.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewTransitionOrderCommand(orderID, sellerID, "accepted")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order status changes.
// The publisher may be nil when event publishing is disabled.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status change command.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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
	if err = aggregate.Transition(cmd.Target(), cmd.ActorID(), now); err != nil {
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
