// Package main is the entry point for the lunar calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/api"
	"github.com/zapponejosh/lunar-api/internal/calendar"
	"github.com/zapponejosh/lunar-api/internal/config"
	"github.com/zapponejosh/lunar-api/internal/database"
	"github.com/zapponejosh/lunar-api/internal/logger"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting lunar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("almanac_source", cfg.AlmanacSource),
		slog.String("log_level", cfg.LogLevel),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}
	log.Info("lunar table loaded",
		slog.Int("min_year", table.MinYear()),
		slog.Int("max_year", table.MaxYear()),
	)

	// =========================================================================
	// Almanac source
	// =========================================================================
	var (
		source almanac.Source
		health api.HealthChecker
	)
	switch cfg.AlmanacSource {
	case config.SourceFile:
		fs, err := almanac.LoadFile(cfg.AlmanacFile)
		if err != nil {
			return err
		}
		log.Info("almanac file loaded",
			slog.String("path", cfg.AlmanacFile),
			slog.Int("records", len(fs.Records())),
		)
		source = fs
	case config.SourceSQLite:
		db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.Migrate(ctx); err != nil {
			return err
		}
		source = database.NewAlmanacSource(db)
		health = db
	default:
		source = almanac.NewGenerator()
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache falls through to the source on every failure.
			log.Warn("redis unreachable, continuing without a warm cache", slog.Any("error", err))
		}
		source = almanac.NewRedisCache(rdb, source, cfg.CacheTTL, log)
		log.Info("almanac cache enabled", slog.Duration("ttl", cfg.CacheTTL))
	}

	// =========================================================================
	// HTTP server
	// =========================================================================
	engine := calendar.NewEngine(table, source, calendar.WithLogger(log))
	handlers := api.NewHandlers(engine, health, cfg.AlmanacSource, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("lunar API ready", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	// Give in-flight requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadTable(cfg *config.Config) (*lunar.Table, error) {
	if cfg.LunarTablePath != "" {
		return lunar.LoadFile(cfg.LunarTablePath)
	}
	return lunar.Default()
}
