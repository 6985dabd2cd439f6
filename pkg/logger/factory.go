package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level and encoding of the process logger.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// New creates a stdout logger: JSON unless cfg.Format is "text".
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(WithExtractors(newHandler(os.Stdout, cfg), extractors...))
}

// NewNope creates a logger that discards everything. Library packages use it
// until a logger is injected.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
