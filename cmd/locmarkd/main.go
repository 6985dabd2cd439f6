// Command locmarkd serves the locmark preview API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/locmark/internal/server"
	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/i18n"
	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/resolve"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// Config is read from the environment and an optional .env file.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	Preset          string        `env:"LOCMARK_PRESET"`
	Translations    string        `env:"LOCMARK_TRANSLATIONS"`
	Languages       []string      `env:"LOCMARK_LANGUAGES" envSeparator:","`
	DefaultLanguage string        `env:"LOCMARK_DEFAULT_LANGUAGE" envDefault:"en"`
	RedisURL        string        `env:"REDIS_URL"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	Log             logger.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "locmarkd:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	log := logger.NewWithSentry(cfg.Log, logger.FromContext("request_id", middleware.GetReqID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []i18n.Option{
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLanguages(cfg.Languages...),
		i18n.WithLogger(log),
	}
	if cfg.Preset != "" {
		p, err := resolve.LoadPreset(os.DirFS(filepath.Dir(cfg.Preset)), filepath.Base(cfg.Preset))
		if err != nil {
			return err
		}
		opts = append(opts, i18n.WithPreset(p))
	}
	if cfg.Translations != "" {
		dir := os.DirFS(cfg.Translations)
		opts = append(opts, i18n.WithJSONDir(dir), i18n.WithYAMLDir(dir))
	}

	var serverOpts []server.Option
	trees, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	opts = append(opts, i18n.WithCache(trees, cfg.CacheTTL))
	switch c := trees.(type) {
	case *cache.Redis[*tree.Tree]:
		serverOpts = append(serverOpts, server.WithCheck("redis", c.Ping))
		log.Info("tree cache", slog.String("backend", "redis"))
	case *cache.Memory[*tree.Tree]:
		serverOpts = append(serverOpts, server.WithInfo("cache", func() any { return c.Stats() }))
		log.Info("tree cache", slog.String("backend", "memory"))
	}

	catalog, err := i18n.New(opts...)
	if err != nil {
		_ = closeCache()
		return err
	}

	serverOpts = append(serverOpts,
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithCORSOrigins(cfg.CORSOrigins...),
		server.WithShutdownHook(func(context.Context) error {
			return errors.Join(catalog.Close(), closeCache())
		}),
	)
	return server.New(catalog, serverOpts...).Run(ctx, cfg.Addr)
}

// openCache connects to Redis when REDIS_URL is set and falls back to an
// in-process LRU otherwise.
func openCache(ctx context.Context, cfg Config) (cache.Cache[*tree.Tree], func() error, error) {
	if cfg.RedisURL == "" {
		m := cache.NewMemory[*tree.Tree](
			cache.WithDefaultTTL(cfg.CacheTTL),
			cache.WithMaxEntries(cfg.CacheMaxEntries),
		)
		return m, m.Close, nil
	}

	client, err := cache.Dial(ctx, cfg.RedisURL, cache.WithRetry(3, time.Second))
	if err != nil {
		return nil, nil, err
	}
	r := cache.NewRedis(client, cache.JSON[*tree.Tree]{},
		cache.WithPrefix("locmark"),
		cache.WithDefaultTTL(cfg.CacheTTL),
	)
	return r, client.Close, nil
}
