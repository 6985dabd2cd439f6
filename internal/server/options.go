package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/locmark/pkg/health"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
	defaultRequestTimeout    = 10 * time.Second
	defaultMaxBodyBytes      = 64 << 10 // 64KB
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCheck registers a readiness check under name.
func WithCheck(name string, fn health.CheckFunc) Option {
	return func(s *Server) {
		s.checks[name] = fn
	}
}

// WithInfo adds a snapshot to JSON readiness responses.
func WithInfo(name string, fn health.InfoFunc) Option {
	return func(s *Server) {
		s.info = append(s.info, health.WithInfo(name, fn))
	}
}

// WithShutdownTimeout bounds graceful shutdown.
// Default: 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithRequestTimeout bounds a single request.
// Default: 10 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithMaxBodyBytes limits the size of resolve requests.
// Default: 64KB.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithShutdownHook runs fn after the HTTP server stopped, e.g. to close the catalog.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Server) {
		s.shutdownHooks = append(s.shutdownHooks, fn)
	}
}

// WithCORSOrigins allows browsers on origins to call the API. "*" allows any
// origin. CORS is off by default.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}
