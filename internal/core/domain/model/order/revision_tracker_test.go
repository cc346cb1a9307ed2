package order_test

import (
	"strings"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionTrackerConsume(t *testing.T) {
	t.Run("should record an open entry", func(t *testing.T) {
		tracker := order.NewRevisionTracker(2)

		require.NoError(t, tracker.Consume("fix the typo in the header", fixedNow))

		assert.Equal(t, 1, tracker.Used())
		assert.Equal(t, 1, tracker.Remaining())
		assert.True(t, tracker.HasOpenEntry())

		entries := tracker.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "fix the typo in the header", entries[0].Reason())
		assert.False(t, entries[0].IsCompleted())
		assert.Nil(t, entries[0].DeliveredAt())
	})

	t.Run("should exhaust the quota", func(t *testing.T) {
		tracker := order.NewRevisionTracker(1)
		require.NoError(t, tracker.Consume("round one", fixedNow))

		err := tracker.Consume("round two", fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrRevisionQuotaExhausted)
		assert.Equal(t, 1, tracker.Used())

		var quotaErr *order.RevisionQuotaExhaustedError
		require.ErrorAs(t, err, &quotaErr)
		assert.Equal(t, 1, quotaErr.Quota)
	})

	t.Run("should reject everything with a zero quota", func(t *testing.T) {
		tracker := order.NewRevisionTracker(0)

		err := tracker.Consume("any", fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrRevisionQuotaExhausted)
	})

	t.Run("should require a reason", func(t *testing.T) {
		tracker := order.NewRevisionTracker(2)

		err := tracker.Consume("", fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, 0, tracker.Used())
	})

	t.Run("should reject an overlong reason without spending quota", func(t *testing.T) {
		tracker := order.NewRevisionTracker(2)

		err := tracker.Consume(strings.Repeat("x", 501), fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 0, tracker.Used())
	})

	t.Run("should accept a reason at the limit", func(t *testing.T) {
		tracker := order.NewRevisionTracker(2)

		require.NoError(t, tracker.Consume(strings.Repeat("x", 500), fixedNow))
	})
}

func TestRevisionTrackerFulfill(t *testing.T) {
	t.Run("should close the most recent open entry", func(t *testing.T) {
		tracker := order.NewRevisionTracker(3)
		require.NoError(t, tracker.Consume("first", fixedNow))
		require.NoError(t, tracker.Fulfill(fixedNow))
		require.NoError(t, tracker.Consume("second", fixedNow))

		later := fixedNow.Add(1)
		require.NoError(t, tracker.Fulfill(later))

		entries := tracker.Entries()
		require.Len(t, entries, 2)
		assert.True(t, entries[1].IsCompleted())
		require.NotNil(t, entries[1].DeliveredAt())
		assert.Equal(t, later, *entries[1].DeliveredAt())
		assert.False(t, tracker.HasOpenEntry())
	})

	t.Run("should fail without an open entry", func(t *testing.T) {
		tracker := order.NewRevisionTracker(3)

		err := tracker.Fulfill(fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
