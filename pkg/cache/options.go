package cache

import "time"

// Option configures a Memory or Redis cache.
type Option func(*options)

type options struct {
	prefix          string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func newOptions(opts []Option) *options {
	o := &options{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// A negative value stores such entries without expiration.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the memory cache janitor drops expired
// entries. Zero disables the janitor; expired entries are then dropped lazily.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the memory cache; the least recently used entry is
// evicted when the bound is reached. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithPrefix namespaces Redis keys as "{prefix}:{key}".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
