package health

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/locmark/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks are named readiness checks.
type Checks map[string]CheckFunc

// InfoFunc returns a JSON-encodable snapshot, such as cache statistics.
type InfoFunc func() any

// Response is the JSON body of the probes.
type Response struct {
	Status string           `json:"status"`
	Checks map[string]Check `json:"checks,omitempty"`
	Info   map[string]any   `json:"info,omitempty"`
}

// Check is the outcome of one check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
	info    map[string]InfoFunc
}

// Option configures the readiness handler.
type Option func(*config)

// WithTimeout bounds the whole readiness run.
// Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks as warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInfo adds a snapshot under name to JSON readiness responses.
func WithInfo(name string, fn InfoFunc) Option {
	return func(c *config) {
		c.info[name] = fn
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
		info:    make(map[string]InfoFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes checks concurrently within the configured timeout.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return run(ctx, checks, newConfig(opts))
}

func run(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(cfg.info) > 0 {
		resp.Info = make(map[string]any, len(cfg.info))
		for name, fn := range cfg.info {
			resp.Info[name] = fn()
		}
	}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
		g       errgroup.Group
	)
	for name, check := range maps.All(checks) {
		g.Go(func() error {
			res := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				res = Check{Status: StatusUnhealthy, Error: err.Error()}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	resp.Checks = results
	for _, c := range results {
		if c.Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}
