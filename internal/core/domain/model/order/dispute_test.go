package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisputeCase(t *testing.T) {
	t.Run("should open a case", func(t *testing.T) {
		initiator := kernel.NewUUID()

		d, err := order.NewDisputeCase(initiator, "quality", "stock image delivered", fixedNow)

		require.NoError(t, err)
		assert.Equal(t, order.DisputeOpen, d.Status())
		assert.Equal(t, "quality", d.Reason())
		assert.Equal(t, "stock image delivered", d.Description())
		assert.True(t, d.InitiatorID().IsEqual(initiator))
		assert.Equal(t, fixedNow, d.OpenedAt())
		assert.False(t, d.IsResolved())
		assert.Nil(t, d.ResolverID())
		assert.Nil(t, d.ResolvedAt())
	})

	t.Run("should require a reason", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "", "", fixedNow)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an initiator", func(t *testing.T) {
		var invalidInitiator kernel.UUID

		d, err := order.NewDisputeCase(invalidInitiator, "quality", "", fixedNow)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestDisputeCaseMarkUnderReview(t *testing.T) {
	t.Run("should move open to under review", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)

		require.NoError(t, d.MarkUnderReview())

		assert.Equal(t, order.DisputeUnderReview, d.Status())
	})

	t.Run("should reject a second review pass", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)
		require.NoError(t, d.MarkUnderReview())

		err = d.MarkUnderReview()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidDisputeTransition)
	})
}

func TestDisputeCaseResolve(t *testing.T) {
	t.Run("should resolve directly from open", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)
		resolver := kernel.NewUUID()

		require.NoError(t, d.Resolve("refund half", resolver, fixedNow))

		assert.True(t, d.IsResolved())
		assert.Equal(t, order.DisputeResolved, d.Status())
		assert.Equal(t, "refund half", d.Resolution())
		require.NotNil(t, d.ResolverID())
		assert.True(t, d.ResolverID().IsEqual(resolver))
		require.NotNil(t, d.ResolvedAt())
		assert.Equal(t, fixedNow, *d.ResolvedAt())
	})

	t.Run("should resolve from under review", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)
		require.NoError(t, d.MarkUnderReview())

		require.NoError(t, d.Resolve("seller redelivers", kernel.NewUUID(), fixedNow))

		assert.True(t, d.IsResolved())
	})

	t.Run("should reject a second resolution", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)
		require.NoError(t, d.Resolve("refund", kernel.NewUUID(), fixedNow))

		err = d.Resolve("changed my mind", kernel.NewUUID(), fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidDisputeTransition)
		assert.Equal(t, "refund", d.Resolution())
	})

	t.Run("should require a resolution text", func(t *testing.T) {
		d, err := order.NewDisputeCase(kernel.NewUUID(), "quality", "", fixedNow)
		require.NoError(t, err)

		err = d.Resolve("", kernel.NewUUID(), fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.False(t, d.IsResolved())
	})
}
