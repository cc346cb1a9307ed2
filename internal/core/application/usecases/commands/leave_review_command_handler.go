package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// LeaveReviewCommandHandler records the buyer's review of a completed
// order. Only the order's buyer may review it.
type LeaveReviewCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewLeaveReviewCommandHandler creates a handler for leaving reviews.
func NewLeaveReviewCommandHandler(uowFactory OrderUoWFactory) LeaveReviewCommandHandler {
	return LeaveReviewCommandHandler{uowFactory: uowFactory}
}

// Handle processes the leave review command.
func (h *LeaveReviewCommandHandler) Handle(ctx context.Context, cmd LeaveReviewCommand) error {
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

	if !aggregate.BuyerID().IsEqual(cmd.ReviewerID()) {
		return errs.NewValueIsInvalidErrorWithCause("reviewer id",
			fmt.Errorf("only the buyer may review the order"))
	}

	if err = aggregate.LeaveReview(cmd.Rating(), cmd.Comment(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
