//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

func newRedis[V any](t *testing.T, prefix string) *cache.Redis[V] {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := cache.Dial(ctx, url)
	require.NoError(t, err)

	c := cache.NewRedis[V](client, nil, cache.WithPrefix(prefix))
	t.Cleanup(func() {
		_ = c.Clear(ctx)
		_ = client.Close()
	})
	return c
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		c := newRedis[int](t, "it-roundtrip")

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "k", 42, time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		has, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.True(t, has)

		require.NoError(t, c.Delete(ctx, "k"))
		has, err = c.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		c := newRedis[string](t, "it-expiry")

		require.NoError(t, c.Set(ctx, "k", "v", 100*time.Millisecond))
		time.Sleep(200 * time.Millisecond)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clear keeps other prefixes", func(t *testing.T) {
		t.Parallel()
		a := newRedis[string](t, "it-clear-a")
		b := newRedis[string](t, "it-clear-b")

		require.NoError(t, a.Set(ctx, "k", "a", time.Minute))
		require.NoError(t, b.Set(ctx, "k", "b", time.Minute))
		require.NoError(t, a.Clear(ctx))

		_, err := a.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "b", v)
	})

	t.Run("ping", func(t *testing.T) {
		t.Parallel()
		c := newRedis[string](t, "it-ping")
		require.NoError(t, c.Ping(ctx))
	})

	t.Run("stores replacement trees", func(t *testing.T) {
		t.Parallel()
		c := newRedis[*tree.Tree](t, "it-tree")

		cfg := tree.Config{Escape: `\`, Ordered: []token.Token{token.MultipleWords("<", ":", ">")}}
		built := tree.Build(`the <a:b\:c> end`, cfg)

		got, err := cache.GetOrSet(ctx, c, "t", func(context.Context) (*tree.Tree, time.Duration, error) {
			return built, time.Minute, nil
		})
		require.NoError(t, err)
		assert.Same(t, built, got)

		decoded, err := c.Get(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, built, decoded)
	})
}
