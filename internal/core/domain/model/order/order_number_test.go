package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberGeneratorNext(t *testing.T) {
	generator := order.NewOrderNumberGenerator()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should produce a valid number", func(t *testing.T) {
		number := generator.Next(now, 42)

		require.NoError(t, order.ValidateOrderNumber(number))
		assert.Len(t, number, 14)
		assert.Equal(t, "TH", number[:2])
		assert.Equal(t, "0042", number[10:])
	})

	t.Run("should wrap the sequence at four digits", func(t *testing.T) {
		number := generator.Next(now, 10042)

		assert.Equal(t, "0042", number[10:])
	})

	t.Run("should vary with the clock", func(t *testing.T) {
		first := generator.Next(now, 1)
		second := generator.Next(now.Add(time.Millisecond), 1)

		assert.NotEqual(t, first, second)
	})
}

func TestValidateOrderNumber(t *testing.T) {
	t.Run("should accept well formed numbers", func(t *testing.T) {
		require.NoError(t, order.ValidateOrderNumber("TH584631270042"))
	})

	t.Run("should require a value", func(t *testing.T) {
		require.Error(t, order.ValidateOrderNumber(""))
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		for _, number := range []string{
			"ORD-123",
			"TH12345",
			"th584631270042",
			"TH58463127004X",
			"TH5846312700421",
		} {
			assert.Error(t, order.ValidateOrderNumber(number), number)
		}
	})
}
