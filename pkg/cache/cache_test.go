package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/cache"
)

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "single", parts: []string{"a"}, want: "a"},
		{name: "joined", parts: []string{"tree.v1", "abcd", "ef01"}, want: "tree.v1:abcd:ef01"},
		{name: "empty parts skipped", parts: []string{"", "key", ""}, want: "key"},
		{name: "nothing", parts: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cache.Key(tt.parts...))
		})
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "k", 2, time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Stats().Entries)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		has, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("default ttl", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithDefaultTTL(10*time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		time.Sleep(20 * time.Millisecond)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", "v", -1))
		time.Sleep(5 * time.Millisecond)
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("lru eviction", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithMaxEntries(2))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

		has, _ := c.Has(ctx, "a")
		assert.True(t, has)
		has, _ = c.Has(ctx, "b")
		assert.False(t, has)
		assert.Equal(t, uint64(1), c.Stats().Evictions)
	})

	t.Run("janitor sweeps expired entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		assert.Eventually(t, func() bool { return c.Stats().Entries == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
		require.NoError(t, c.Delete(ctx, "a"))
		require.NoError(t, c.Delete(ctx, "missing"))
		assert.Equal(t, 1, c.Stats().Entries)

		require.NoError(t, c.Clear(ctx))
		assert.Equal(t, 0, c.Stats().Entries)
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		_, _ = c.Get(ctx, "a")
		_, _ = c.Get(ctx, "a")
		_, _ = c.Get(ctx, "b")

		assert.Equal(t, cache.Stats{Entries: 1, Hits: 2, Misses: 1}, c.Stats())
	})

	t.Run("closed rejects writes", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(ctx, "k", "w", time.Minute), cache.ErrClosed)
		require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
		require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithMaxEntries(8))
		defer c.Close()

		var wg sync.WaitGroup
		for i := range 64 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := string(rune('a' + i%16))
				_ = c.Set(ctx, key, i, time.Minute)
				_, _ = c.Get(ctx, key)
				_ = c.Delete(ctx, key)
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Stats().Entries, 8)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hit skips fn", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()
		require.NoError(t, c.Set(ctx, "k", "cached", time.Minute))

		v, err := cache.GetOrSet(ctx, c, "k", func(context.Context) (string, time.Duration, error) {
			t.Fatal("fn called on hit")
			return "", 0, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "cached", v)
	})

	t.Run("miss stores result", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		v, err := cache.GetOrSet(ctx, c, "k", func(context.Context) (string, time.Duration, error) {
			return "computed", time.Minute, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "computed", v)

		stored, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "computed", stored)
	})

	t.Run("error is not stored", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()
		boom := errors.New("boom")

		_, err := cache.GetOrSet(ctx, c, "k", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("concurrent misses call fn once", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		defer c.Close()

		var calls atomic.Int64
		var wg sync.WaitGroup
		start := make(chan struct{})
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				v, err := cache.GetOrSet(ctx, c, "k", func(context.Context) (int, time.Duration, error) {
					calls.Add(1)
					time.Sleep(20 * time.Millisecond)
					return 42, time.Minute, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 42, v)
			}()
		}
		close(start)
		wg.Wait()
		// A goroutine that missed before the first flight stored its result
		// may start a second one.
		assert.LessOrEqual(t, calls.Load(), int64(2))
	})

	t.Run("caches of different types do not share flights", func(t *testing.T) {
		t.Parallel()
		ints := cache.NewMemory[int]()
		defer ints.Close()
		strs := cache.NewMemory[string]()
		defer strs.Close()

		release := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			v, err := cache.GetOrSet(ctx, ints, "shared", func(context.Context) (int, time.Duration, error) {
				<-release
				return 7, 0, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
		go func() {
			defer wg.Done()
			v, err := cache.GetOrSet(ctx, strs, "shared", func(context.Context) (string, time.Duration, error) {
				<-release
				return "seven", 0, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "seven", v)
		}()
		close(release)
		wg.Wait()
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type entry struct {
		Name  string   `json:"name"`
		Spans []string `json:"spans"`
	}
	m := cache.JSON[entry]{}

	data, err := m.Marshal(entry{Name: "a", Spans: []string{"x"}})
	require.NoError(t, err)
	got, err := m.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "a", Spans: []string{"x"}}, got)

	_, err = m.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)

	_, err = cache.JSON[func()]{}.Marshal(func() {})
	require.ErrorIs(t, err, cache.ErrMarshal)
}

func TestDial(t *testing.T) {
	t.Parallel()

	_, err := cache.Dial(context.Background(), "http://localhost:6379")
	require.ErrorIs(t, err, cache.ErrInvalidURL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cache.Dial(ctx, "redis://127.0.0.1:1/0", cache.WithRetry(1, time.Millisecond), cache.WithTimeout(50*time.Millisecond))
	require.ErrorIs(t, err, cache.ErrConnectionFailed)
}
