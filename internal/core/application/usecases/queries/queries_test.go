package queries_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewGetOrderQuery(kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should fail with missing order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetOrderQuery(invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validate on zero value query", func(t *testing.T) {
		var q queries.GetOrderQuery

		require.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetOrderMessagesQuery(t *testing.T) {
	t.Run("should default and cap paging", func(t *testing.T) {
		q, err := queries.NewGetOrderMessagesQuery(kernel.NewUUID(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, q.Page())
		assert.Equal(t, 20, q.Limit())

		q, err = queries.NewGetOrderMessagesQuery(kernel.NewUUID(), 2, 500)
		require.NoError(t, err)
		assert.Equal(t, 2, q.Page())
		assert.Equal(t, 100, q.Limit())
	})

	t.Run("should fail with missing order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetOrderMessagesQuery(invalidID, 1, 20)

		require.Error(t, err)
	})
}

func TestNewGetOverdueOrdersQuery(t *testing.T) {
	q := queries.NewGetOverdueOrdersQuery(time.Now())

	require.NoError(t, q.Validate())
}
