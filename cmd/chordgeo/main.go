package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/chord/chordgeo/internal/api"
	"github.com/chord/chordgeo/internal/auth"
	"github.com/chord/chordgeo/internal/batch"
	"github.com/chord/chordgeo/internal/ellipsoid"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("CHORDGEO_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	authCfg, err := loadAuthConfig(logger)
	if err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	apiCfg, err := loadAPIConfig(logger)
	if err != nil {
		logger.Error("invalid solver configuration", "error", err)
		os.Exit(1)
	}

	workers := loadWorkerCount(logger)
	pool := batch.NewPool(workers, logger)

	srv := api.NewServer(addr, logger, authCfg, apiCfg, pool)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", addr,
			"auth_enabled", authCfg.Enabled,
			"batch_workers", workers,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func loadAuthConfig(logger *slog.Logger) (auth.Config, error) {
	cfg := auth.Config{}

	enabledStr := os.Getenv("CHORDGEO_AUTH_ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, errors.New("CHORDGEO_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.Enabled = enabled
	}

	if cfg.Enabled {
		cfg.Token = os.Getenv("CHORDGEO_AUTH_TOKEN")
		if cfg.Token == "" {
			return cfg, errors.New("CHORDGEO_AUTH_TOKEN is required when auth is enabled")
		}
		logger.Info("auth enabled")
	}

	return cfg, nil
}

func loadAPIConfig(logger *slog.Logger) (api.Config, error) {
	cfg := api.Config{
		DefaultEllipsoid: ellipsoid.Default(),
		BatchMaxProblems: 10000,
	}

	if v := os.Getenv("CHORDGEO_DEFAULT_ELLIPSOID"); v != "" {
		ell, err := ellipsoid.Lookup(v)
		if err != nil {
			return cfg, err
		}
		cfg.DefaultEllipsoid = ell
		logger.Info("default ellipsoid overridden", "name", v)
	}

	if v := os.Getenv("CHORDGEO_BATCH_MAX_PROBLEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid CHORDGEO_BATCH_MAX_PROBLEMS value, using default", "value", v, "default", cfg.BatchMaxProblems)
		} else {
			cfg.BatchMaxProblems = n
		}
	}

	if v := os.Getenv("CHORDGEO_TRUST_PROXY"); v != "" {
		trusted, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid CHORDGEO_TRUST_PROXY value, defaulting to false", "value", v)
		} else {
			cfg.TrustProxy = trusted
		}
	}

	logger.Info("api config",
		"default_ellipsoid_a", cfg.DefaultEllipsoid.A(),
		"default_ellipsoid_b", cfg.DefaultEllipsoid.B(),
		"batch_max_problems", cfg.BatchMaxProblems,
		"trust_proxy", cfg.TrustProxy,
	)

	return cfg, nil
}

func loadWorkerCount(logger *slog.Logger) int {
	workers := runtime.NumCPU()

	if v := os.Getenv("CHORDGEO_BATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid CHORDGEO_BATCH_WORKERS value, using default", "value", v, "default", workers)
		} else {
			workers = n
		}
	}

	return workers
}
