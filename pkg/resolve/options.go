package resolve

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

const defaultCacheEntries = 1024

// Option configures a Resolver or an Engine.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	plurality *plural.Definition
	cache     cache.Cache[*tree.Tree]
	ttl       time.Duration
	noCache   bool
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.plurality == nil {
		o.plurality = plural.Parse(plural.DefaultRule, plural.WithLogger(o.logger))
	}
	return o
}

// WithLogger sets the logger receiving diagnostics about malformed templates
// and missing resolution data.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPlurality sets the default plural definition.
// Default: plural.DefaultRule.
func WithPlurality(d *plural.Definition) Option {
	return func(o *options) {
		o.plurality = d
	}
}

// WithCache memoizes built trees in c for ttl. Zero ttl uses the cache default.
// Default: an in-memory LRU of 1024 trees that never expire.
func WithCache(c cache.Cache[*tree.Tree], ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		o.ttl = ttl
	}
}

// WithoutCache builds a fresh tree on every call.
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}
