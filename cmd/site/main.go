// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/config"
	"github.com/falahcapital/site/internal/handler"
	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/logging"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/service"
	"github.com/falahcapital/site/internal/session"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/translation"
	"github.com/falahcapital/site/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func buildInfo() version.Info {
	return version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
}

const (
	eventRetention     = 30 * 24 * time.Hour
	eventCleanupPeriod = 24 * time.Hour
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "site - multilingual content backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DB_PATH           SQLite database path (default: ./data/site.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DO_SEED           Seed default translations and demo content\n")
	}
	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("site %s\n", buildInfo())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(textHandler))

	if err := i18n.Init(slog.Default()); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// WARN and above also go to the event log table
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	if err := store.Seed(ctx, db, store.SeedConfig{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	queries := store.New(db)

	backend, backendName := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	cacheManager := cache.NewManager(backend, backendName, queries, cfg.CacheTTLDuration())
	defer func() { _ = cacheManager.Close() }()
	if err := cacheManager.Config.Preload(ctx); err != nil {
		slog.Warn("failed to preload config cache", "error", err)
	}
	slog.Info("cache manager initialized", "backend", backendName)

	defaults, err := translation.LoadDefaults()
	if err != nil {
		return fmt.Errorf("loading default translations: %w", err)
	}

	translations := service.NewTranslationService(queries, cacheManager, defaults, cfg.WriteConcurrency, logger)
	events := service.NewEventService(db, logger)

	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
		n, err := translations.SeedDefaults(ctx)
		if err != nil {
			return fmt.Errorf("seeding default translations: %w", err)
		}
		slog.Info("default translations seeded", "rows", n)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	router := handler.NewRouter(handler.Deps{
		DB:              db,
		Cache:           cacheManager,
		Sessions:        session.New(db, cfg.IsDevelopment()),
		Translations:    translations,
		Projects:        service.NewProjectService(queries, cacheManager, cfg.WriteConcurrency, logger),
		Team:            service.NewTeamService(queries, cacheManager, cfg.WriteConcurrency, logger),
		Config:          service.NewConfigService(queries, cacheManager, cfg.WriteConcurrency, logger),
		Users:           service.NewUserService(queries, logger),
		Events:          events,
		LoginProtection: loginProtection,
		RateLimiter:     middleware.NewGlobalRateLimiter(100, 200),
		CSRFKey:         []byte(cfg.SessionSecret),
		IsDevelopment:   cfg.IsDevelopment(),
		Build:           buildInfo(),
	})

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneEvents(runCtx, events)
	go loginProtection.Run(runCtx, 10*time.Minute)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-runCtx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// pruneEvents deletes old event log rows once a day until ctx is done.
func pruneEvents(ctx context.Context, events *service.EventService) {
	ticker := time.NewTicker(eventCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := events.DeleteOldEvents(ctx, eventRetention)
			if err != nil {
				slog.Error("pruning event log", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("event log pruned", "deleted", n)
			}
		}
	}
}
