package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// maxOrderNumberAttempts bounds the regenerate-and-retry loop on an order
// number collision. The number embeds a millisecond clock, so collisions
// need two orders in the same millisecond with the same wrapped sequence.
const maxOrderNumberAttempts = 3

// CreateOrderCommandHandler handles the business logic for order creation.
// Assigns the order number, freezes the package snapshot, and persists the
// new order in pending status with a pending payment.
//
// Uniqueness of the order number is enforced by the database; on a
// collision the handler regenerates the number and retries the whole
// transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	generator  order.OrderNumberGenerator
	sequence   atomic.Int64
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		generator:  order.NewOrderNumberGenerator(),
	}
}

// Handle processes the order creation command and returns the new order's ID.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	price, err := kernel.NewMoney(cmd.PriceAmount())
	if err != nil {
		return kernel.UUID{}, err
	}

	snapshot, err := order.NewPackageSnapshot(
		cmd.PackageName(),
		cmd.PackageDescription(),
		price,
		cmd.DeliveryDays(),
		cmd.RevisionQuota(),
		cmd.Features(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	requirements := make([]order.Requirement, 0, len(cmd.Requirements()))
	for _, input := range cmd.Requirements() {
		kind, parseErr := order.ParseRequirementKind(input.Kind)
		if parseErr != nil {
			return kernel.UUID{}, parseErr
		}
		requirements = append(requirements, order.Requirement{
			Question: input.Question,
			Answer:   input.Answer,
			Kind:     kind,
		})
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		now := time.Now().UTC()
		orderNumber := h.generator.Next(now, h.sequence.Add(1))

		aggregate, newErr := order.NewOrder(
			kernel.NewUUID(),
			orderNumber,
			cmd.BuyerID(),
			cmd.SellerID(),
			cmd.ServiceID(),
			snapshot,
			cmd.PaymentMethod(),
			requirements,
			now,
			nil,
		)
		if newErr != nil {
			return kernel.UUID{}, newErr
		}

		addErr := h.add(ctx, aggregate)
		if addErr == nil {
			return aggregate.ID(), nil
		}
		if !errors.Is(addErr, errs.ErrValueIsNotUnique) {
			return kernel.UUID{}, addErr
		}
		lastErr = addErr
	}

	return kernel.UUID{}, lastErr
}

func (h *CreateOrderCommandHandler) add(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
