package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// FromContext returns an extractor adding key=fn(ctx) when fn yields a
// non-empty string, e.g. logger.FromContext("request_id", middleware.GetReqID).
func FromContext(key string, fn func(context.Context) string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := fn(ctx); v != "" {
			return slog.String(key, v), true
		}
		return slog.Attr{}, false
	}
}

type templateKey struct{}

// WithTemplate stores the name of the template being resolved in ctx.
func WithTemplate(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, templateKey{}, name)
}

// Template returns the template name stored by WithTemplate.
func Template(ctx context.Context) string {
	name, _ := ctx.Value(templateKey{}).(string)
	return name
}

// extractingHandler adds the attributes of its extractors to every record.
// Extraction happens per call so request-scoped values stay fresh.
type extractingHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// WithExtractors wraps next so that every record carries the extracted
// attributes. Nil extractors are skipped.
func WithExtractors(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &extractingHandler{next: next, extractors: clean}
}

func (h *extractingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *extractingHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *extractingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &extractingHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *extractingHandler) WithGroup(name string) slog.Handler {
	return &extractingHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
