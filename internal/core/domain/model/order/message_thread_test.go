package order_test

import (
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageThreadAppend(t *testing.T) {
	t.Run("should append messages in order", func(t *testing.T) {
		thread := order.NewMessageThread()
		sender := kernel.NewUUID()

		require.NoError(t, thread.Append(sender, "first", nil, fixedNow))
		require.NoError(t, thread.Append(sender, "second", nil, fixedNow.Add(1)))

		require.Equal(t, 2, thread.Len())
		messages := thread.Messages()
		assert.Equal(t, "first", messages[0].Text())
		assert.Equal(t, "second", messages[1].Text())
	})

	t.Run("should require a sender", func(t *testing.T) {
		thread := order.NewMessageThread()
		var invalidSender kernel.UUID

		err := thread.Append(invalidSender, "hello", nil, fixedNow)

		require.Error(t, err)
		assert.Zero(t, thread.Len())
	})

	t.Run("should require text", func(t *testing.T) {
		thread := order.NewMessageThread()

		err := thread.Append(kernel.NewUUID(), "", nil, fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject overlong text", func(t *testing.T) {
		thread := order.NewMessageThread()

		err := thread.Append(kernel.NewUUID(), strings.Repeat("a", 1001), nil, fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should accept text at the limit", func(t *testing.T) {
		thread := order.NewMessageThread()

		require.NoError(t, thread.Append(kernel.NewUUID(), strings.Repeat("a", 1000), nil, fixedNow))
	})
}

func TestMessageThreadPage(t *testing.T) {
	thread := order.NewMessageThread()
	sender := kernel.NewUUID()
	for i := 0; i < 5; i++ {
		require.NoError(t, thread.Append(sender, string(rune('a'+i)), nil, fixedNow.Add(time.Duration(i))))
	}

	t.Run("should page newest first", func(t *testing.T) {
		page := thread.Page(1, 2)

		require.Len(t, page, 2)
		assert.Equal(t, "e", page[0].Text())
		assert.Equal(t, "d", page[1].Text())
	})

	t.Run("should return a short final page", func(t *testing.T) {
		page := thread.Page(3, 2)

		require.Len(t, page, 1)
		assert.Equal(t, "a", page[0].Text())
	})

	t.Run("should return nothing past the end", func(t *testing.T) {
		assert.Empty(t, thread.Page(4, 2))
	})

	t.Run("should return nothing for invalid paging", func(t *testing.T) {
		assert.Empty(t, thread.Page(0, 2))
		assert.Empty(t, thread.Page(1, 0))
	})
}
