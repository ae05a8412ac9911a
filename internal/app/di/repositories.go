package di

import (
	chartadapters "coin_backend/internal/feature/charts/adapters"
	"coin_backend/internal/feature/charts/usecase"
	"coin_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewChartRepository creates a ChartRepository implementation.
// If Redis is available, the database repository is wrapped with a cache that expires at the next daily close.
func NewChartRepository(rdb *redis.Client, db *gorm.DB) usecase.ChartRepository {
	repo := chartadapters.NewChartRepository(db)
	if rdb != nil {
		return cache.NewCachingChartRepository(rdb, 0, repo, "charts")
	}
	return repo
}
