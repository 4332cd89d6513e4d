package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored url", func(t *testing.T) {
		c := store.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(ctx, "abc1234", "https://example.com/", time.Minute))

		got, err := c.Get(ctx, "abc1234")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", got)
	})

	t.Run("misses unknown code", func(t *testing.T) {
		c := store.NewMemoryCache(time.Minute)

		_, err := c.Get(ctx, "abc1234")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("expires entries after ttl", func(t *testing.T) {
		c := store.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(ctx, "abc1234", "https://example.com/", 10*time.Millisecond))

		assert.Eventually(t, func() bool {
			_, err := c.Get(ctx, "abc1234")

			return err != nil
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("flush drops everything", func(t *testing.T) {
		c := store.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(ctx, "abc1234", "https://example.com/", time.Minute))

		c.Flush()

		_, err := c.Get(ctx, "abc1234")
		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})
}
