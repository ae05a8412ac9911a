package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"coin_backend/internal/app/di"
	"coin_backend/internal/app/router"
	"coin_backend/internal/feature/charts/usecase"
	infradb "coin_backend/internal/platform/db"
	jwtmw "coin_backend/internal/platform/jwt"
	"coin_backend/internal/platform/logging"
	infraredis "coin_backend/internal/platform/redis"
)

func main() {
	logging.Setup()
	cfg := di.LoadAppConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); !redisCfg.Enabled() {
		slog.Warn("REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	c := di.NewContainer(cfg, db, rdb)

	if cfg.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		if err := c.Seed.Run(seedCtx); err != nil {
			slog.Error("seed failed", "error", err)
		} else if err := c.Ingest.IngestAll(seedCtx, usecase.PopularMarkets); err != nil {
			slog.Error("chart ingest failed", "error", err)
		}
		cancel()
	}

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Admin API will reject every request.")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(c.Handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "max_displayed", cfg.MaxDisplayed)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
