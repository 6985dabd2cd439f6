package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/locmark/pkg/health"
	"github.com/dmitrymomot/locmark/pkg/i18n"
	"github.com/dmitrymomot/locmark/pkg/logger"
)

// Server is the HTTP preview service over an i18n catalog.
type Server struct {
	catalog         *i18n.Catalog
	logger          *slog.Logger
	checks          health.Checks
	info            []health.Option
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
	requestTimeout  time.Duration
	maxBodyBytes    int64
	corsOrigins     []string
}

// New creates a Server. It panics on a nil catalog.
func New(catalog *i18n.Catalog, opts ...Option) *Server {
	if catalog == nil {
		panic("server: catalog is nil")
	}
	s := &Server{
		catalog:         catalog,
		logger:          logger.NewNope(),
		checks:          make(health.Checks),
		shutdownTimeout: defaultShutdownTimeout,
		requestTimeout:  defaultRequestTimeout,
		maxBodyBytes:    defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors(s.corsOrigins))
	}

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(s.checks,
		append([]health.Option{health.WithLogger(s.logger)}, s.info...)...,
	))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.requestTimeout))
		r.Use(s.logRequests)
		r.Post("/resolve", s.handleResolve)
		r.Get("/languages", s.handleLanguages)
	})
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully and runs
// the shutdown hooks.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}
	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}
	s.logger.Info("shutdown completed")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
