package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel is the lowest level stored as a Sentry log. Errors always
	// create issues.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// NewWithSentry creates a logger writing to stdout and, when cfg.Sentry.DSN
// is set, to Sentry. Template diagnostics are warnings, so the default
// MinLevel keeps them searchable next to the errors.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdout := newHandler(os.Stdout, cfg)
	if cfg.Sentry.DSN == "" {
		return slog.New(WithExtractors(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(WithExtractors(stdout, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Sentry.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(WithExtractors(multiHandler{stdout, toSentry}, extractors...))
}
