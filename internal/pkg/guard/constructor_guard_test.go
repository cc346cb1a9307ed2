package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly constructed guard returns nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns custom error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_UsageInDomainObject(t *testing.T) {
	type snapshot struct {
		price int64
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("snapshot must be created via its constructor")

	newSnapshot := func(price int64) (snapshot, error) {
		if price < 0 {
			return snapshot{}, errors.New("price cannot be negative")
		}
		return snapshot{price: price, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed object passes validation", func(t *testing.T) {
		s, err := newSnapshot(1500)

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errNotConstructed))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s snapshot

		err := s.guard.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
