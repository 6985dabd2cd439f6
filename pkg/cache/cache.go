package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

// Pinger is implemented by caches backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Key joins non-empty parts with ":".
func Key(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(':')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Marshaler serializes cache values for backends that store bytes.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON is the default Marshaler.
type JSON[V any] struct{}

func (JSON[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSON[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// groups holds one singleflight group per cache instance, so equal keys in
// caches of different value types never share a flight.
var groups sync.Map // map[any]*singleflight.Group

func groupFor(c any) *singleflight.Group {
	if g, ok := groups.Load(c); ok {
		return g.(*singleflight.Group)
	}
	g, _ := groups.LoadOrStore(c, new(singleflight.Group))
	return g.(*singleflight.Group)
}

// Forget drops the singleflight group kept for c. Call it after closing a
// cache that will not be used again.
func Forget(c any) {
	groups.Delete(c)
}

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value of key, or calls fn on a miss and stores
// its result. Concurrent misses of the same key on the same cache call fn once.
//
// If fn fails, nothing is stored and the error is returned. A failed Set is
// ignored: the computed value is still returned.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := groupFor(c).Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, val, ttl)
		return loaded[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(loaded[V]).val, nil
}
