package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"coin_backend/internal/app/di"
	"coin_backend/internal/feature/charts/usecase"
	infradb "coin_backend/internal/platform/db"
	"coin_backend/internal/platform/logging"
)

func main() {
	skipSeed := flag.Bool("skip-seed", false, "skip coin catalog bootstrap")
	markets := flag.String("markets", strings.Join(usecase.PopularMarkets, ","), "comma separated market codes to ingest")
	flag.Parse()

	logging.Setup()
	cfg := di.LoadAppConfig()

	db, err := infradb.OpenDB()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// キャッシュは使用しない
	c := di.NewContainer(cfg, db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if !*skipSeed {
		if err := c.Seed.Run(ctx); err != nil {
			slog.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	if err := c.Ingest.IngestAll(ctx, strings.Split(*markets, ",")); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok")
}
