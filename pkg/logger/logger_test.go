package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/logger"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder(slog.LevelWarn)
	log := slog.New(rec).With("component", "tree")

	log.Info("ignored")
	log.Warn("tree: unclosed token", "token", "<<", "offset", 4)
	log.WithGroup("span").Warn("resolve: token left unresolved", "kind", "plural")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, slog.LevelWarn, entries[0].Level)
	assert.Equal(t, "tree: unclosed token", entries[0].Message)
	assert.Equal(t, map[string]any{"component": "tree", "token": "<<", "offset": int64(4)}, entries[0].Attrs)
	assert.Equal(t, map[string]any{"component": "tree", "span.kind": "plural"}, entries[1].Attrs)
}

func TestTee(t *testing.T) {
	t.Parallel()

	base := logger.NewRecorder(slog.LevelDebug)
	diag := logger.NewRecorder(slog.LevelWarn)
	log := logger.Tee(slog.New(base), diag)

	log.Debug("debug")
	log.Warn("warn")

	assert.Len(t, base.Entries(), 2)
	require.Len(t, diag.Entries(), 1)
	assert.Equal(t, "warn", diag.Entries()[0].Message)
}

func TestWithExtractors(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder(slog.LevelInfo)
	log := slog.New(logger.WithExtractors(rec,
		logger.FromContext("template", logger.Template),
		nil,
	))

	log.InfoContext(context.Background(), "no template")
	log.InfoContext(logger.WithTemplate(context.Background(), "cart.items"), "with template")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].Attrs)
	assert.Equal(t, "cart.items", entries[1].Attrs["template"])
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
