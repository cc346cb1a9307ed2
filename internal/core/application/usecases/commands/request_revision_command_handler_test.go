package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate := pendingOrder(t)
	now := time.Now().UTC()
	require.NoError(t, aggregate.MarkPaymentPaid("txn_1", now))
	for _, status := range []order.Status{order.Accepted, order.InProgress, order.Delivered} {
		require.NoError(t, aggregate.Transition(status, aggregate.SellerID(), now))
	}
	return aggregate
}

func TestRequestRevisionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := deliveredOrder(t)
	cmd, err := commands.NewRequestRevisionCommand(aggregate.ID(), "make the logo bigger")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestRevisionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.RevisionRequested, aggregate.Status())
	assert.Equal(t, 1, aggregate.Revisions().Used())
}

func TestRequestRevisionCommandHandler_Handle_QuotaExhausted(t *testing.T) {
	ctx := t.Context()
	aggregate := deliveredOrder(t)
	now := time.Now().UTC()
	for i := 0; i < 2; i++ {
		require.NoError(t, aggregate.RequestRevision("round", now))
		require.NoError(t, aggregate.Transition(order.RevisionDelivered, aggregate.SellerID(), now))
	}

	cmd, err := commands.NewRequestRevisionCommand(aggregate.ID(), "one more")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewRequestRevisionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrRevisionQuotaExhausted)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
