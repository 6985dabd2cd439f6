package resolve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/shape"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// parserKind versions the tree layout in cache keys.
const parserKind = "tree.v1"

// Resolver owns a validated token configuration and memoizes the trees built
// from it. It is safe for concurrent use.
type Resolver struct {
	cfg         tree.Config
	opts        *options
	cache       cache.Cache[*tree.Tree]
	fingerprint string
	plain       *Engine[string, string]
}

// New validates cfg and returns a resolver. An ambiguous token set is a
// configuration error wrapping ErrInvalidConfig.
func New(cfg tree.Config, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := newOptions(opts)
	r := &Resolver{
		cfg:         cfg,
		opts:        o,
		cache:       o.cache,
		fingerprint: cfg.Fingerprint(),
	}
	if r.cache == nil && !o.noCache {
		r.cache = cache.NewMemory[*tree.Tree](
			cache.WithCleanupInterval(0),
			cache.WithMaxEntries(defaultCacheEntries),
			cache.WithDefaultTTL(-1),
		)
	}
	r.plain = newEngine[string, string](shape.Plain{}, shape.Plain{}, func(s string) string { return s }, o)
	return r, nil
}

// Config returns the token configuration.
func (r *Resolver) Config() tree.Config {
	return r.cfg
}

// Logger returns the configured logger.
func (r *Resolver) Logger() *slog.Logger {
	return r.opts.logger
}

// Parse returns the tree of template, building it at most once per cache
// lifetime. The returned tree is shared and must not be modified.
func (r *Resolver) Parse(ctx context.Context, template string) (*tree.Tree, error) {
	if r.cache == nil {
		return r.build(template), nil
	}
	return cache.GetOrSet(ctx, r.cache, r.key(template),
		func(context.Context) (*tree.Tree, time.Duration, error) {
			return r.build(template), r.opts.ttl, nil
		},
	)
}

// ResolveString resolves a plain-text template to plain text.
func (r *Resolver) ResolveString(ctx context.Context, template string, data Data[string, string]) (string, error) {
	t, err := r.Parse(ctx, template)
	if err != nil {
		return "", err
	}
	return r.plain.Resolve(t, template, data)
}

// Close releases the default cache. Caches passed with WithCache are owned by
// the caller.
func (r *Resolver) Close() error {
	if r.cache != nil && r.opts.cache == nil {
		cache.Forget(r.cache)
		return r.cache.Close()
	}
	return nil
}

func (r *Resolver) build(template string) *tree.Tree {
	return tree.Build(template, r.cfg, tree.WithLogger(r.opts.logger))
}

func (r *Resolver) key(template string) string {
	sum := sha256.Sum256([]byte(template))
	return cache.Key(parserKind, r.fingerprint, hex.EncodeToString(sum[:]))
}

// EngineFor returns an engine sharing the resolver's logger and default
// plural definition.
func EngineFor[S, T any](r *Resolver, src Adapter[S], dst Adapter[T], convert func(S) T) *Engine[S, T] {
	return newEngine(src, dst, convert, r.opts)
}

// Resolve parses the text of source with r and resolves it with e.
func Resolve[S, T any](ctx context.Context, r *Resolver, e *Engine[S, T], source S, data Data[S, T]) (T, error) {
	t, err := r.Parse(ctx, e.src.String(source))
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Resolve(t, source, data)
}

func newEngine[S, T any](src Adapter[S], dst Adapter[T], convert func(S) T, o *options) *Engine[S, T] {
	return &Engine[S, T]{src: src, dst: dst, convert: convert, opts: o}
}
