// Package cache provides a generic Cache interface with in-memory and Redis
// implementations. locmark uses it to memoize replacement trees, which are
// pure functions of the template and the token configuration.
//
// TTL semantics for Set: a positive duration expires the entry after that
// duration, zero uses the configured default (1 hour unless changed), and a
// negative duration keeps the entry until it is deleted or evicted.
//
// # In-Memory Cache
//
// [NewMemory] keeps entries in a map plus an LRU list. [WithMaxEntries] bounds
// it, and a janitor goroutine drops expired entries every
// [WithCleanupInterval]:
//
//	c := cache.NewMemory[*tree.Tree](cache.WithMaxEntries(1024))
//	defer c.Close()
//
// [Memory.Stats] reports hits, misses and evictions.
//
// # Redis Cache
//
// [Dial] opens a pinged client, and [NewRedis] stores values through a
// [Marshaler] (JSON when nil):
//
//	client, err := cache.Dial(ctx, "redis://localhost:6379/0")
//	if err != nil {
//	    return err
//	}
//	c := cache.NewRedis[*tree.Tree](client, nil,
//	    cache.WithPrefix("locmark"),
//	    cache.WithDefaultTTL(24*time.Hour),
//	)
//
// # Stampede Prevention
//
// [GetOrSet] computes a missing value once, however many goroutines ask for
// the same key concurrently:
//
//	t, err := cache.GetOrSet(ctx, c, key, func(ctx context.Context) (*tree.Tree, time.Duration, error) {
//	    return tree.Build(template, cfg), 0, nil
//	})
package cache
