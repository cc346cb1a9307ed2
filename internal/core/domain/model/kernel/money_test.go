package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with positive amount", func(t *testing.T) {
		m, err := kernel.NewMoney(2500)

		require.NoError(t, err)
		assert.Equal(t, int64(2500), m.Amount())
		assert.False(t, m.IsZero())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a, _ := kernel.NewMoney(1000)
	b, _ := kernel.NewMoney(300)

	t.Run("should add amounts", func(t *testing.T) {
		assert.Equal(t, int64(1300), a.Add(b).Amount())
	})

	t.Run("should subtract amounts", func(t *testing.T) {
		diff, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, int64(700), diff.Amount())
	})

	t.Run("should fail when subtraction goes negative", func(t *testing.T) {
		_, err := b.Sub(a)

		require.Error(t, err)
	})

	t.Run("should compare amounts", func(t *testing.T) {
		assert.True(t, b.LessThan(a))
		assert.False(t, a.LessThan(b))
		assert.True(t, a.IsEqual(a))
		assert.False(t, a.IsEqual(b))
	})
}
