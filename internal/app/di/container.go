package di

import (
	"context"
	"time"

	"coin_backend/internal/app/router"
	chartusecase "coin_backend/internal/feature/charts/usecase"
	coinadapters "coin_backend/internal/feature/coins/adapters"
	coinhandler "coin_backend/internal/feature/coins/transport/handler"
	coinusecase "coin_backend/internal/feature/coins/usecase"
	issueadapters "coin_backend/internal/feature/issues/adapters"
	issuehandler "coin_backend/internal/feature/issues/transport/handler"
	issueusecase "coin_backend/internal/feature/issues/usecase"
	platformhandler "coin_backend/internal/platform/http/handler"
	infraredis "coin_backend/internal/platform/redis"
	"coin_backend/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Upbit の quotation API は 1 秒あたり 10 リクエストまで。
const (
	upbitRequestsPerInterval = 10
	upbitInterval            = time.Second
)

// Container はプロセス全体で共有するコンポーネントです。
type Container struct {
	Handlers router.Handlers
	Seed     *coinusecase.SeedUsecase
	Ingest   *chartusecase.IngestUsecase
}

// NewContainer はすべての依存関係を組み立てます。rdb が nil の場合はキャッシュなしで動作します。
func NewContainer(cfg AppConfig, db *gorm.DB, rdb *redis.Client) *Container {
	upbitClient := NewUpbitClient()
	naverClient := NewNaverClient()

	// Repository
	coinRepo := coinadapters.NewCoinRepository(db)
	chartRepo := NewChartRepository(rdb, db)
	issueRepo := issueadapters.NewIssueRepository(db)

	// Usecase
	coinUC := coinusecase.NewCoinUsecase(coinRepo, chartRepo, issueRepo, upbitClient, naverClient)
	adminUC := coinusecase.NewAdminCoinUsecase(coinRepo, cfg.MaxDisplayed)
	issueUC := issueusecase.NewIssueUsecase(issueRepo, coinRepo, chartRepo)
	seedUC := coinusecase.NewSeedUsecase(coinRepo, coinRepo, upbitClient, cfg.MaxDisplayed, cfg.PruneOnSeed)
	ingestUC := chartusecase.NewIngestUsecase(upbitClient, coinRepo, chartRepo,
		ratelimiter.NewRateLimiter(upbitRequestsPerInterval, upbitInterval))

	// Health checks
	checks := map[string]platformhandler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return infraredis.Ping(ctx, rdb) }
	}

	return &Container{
		Handlers: router.Handlers{
			Health:     platformhandler.NewHealthHandler(checks),
			Coin:       coinhandler.NewCoinHandler(coinUC),
			AdminCoin:  coinhandler.NewAdminCoinHandler(adminUC),
			Issue:      issuehandler.NewIssueHandler(issueUC),
			AdminIssue: issuehandler.NewAdminIssueHandler(issueUC),
		},
		Seed:   seedUC,
		Ingest: ingestUC,
	}
}
