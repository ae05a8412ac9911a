// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/feature/charts/usecase"
)

// CachingChartRepository decorates a ChartRepository with Redis caching of
// the per-coin chart history.
type CachingChartRepository struct {
	inner     usecase.ChartRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.ChartRepository = (*CachingChartRepository)(nil)

// NewCachingChartRepository decorates a ChartRepository with Redis caching.
// If ttl is 0, entries expire at the next daily candle close. If namespace is empty, it uses "charts".
func NewCachingChartRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ChartRepository, namespace string) *CachingChartRepository {
	ttlFn := func() time.Duration { return ttl }
	if ttl <= 0 {
		ttlFn = func() time.Duration { return TimeUntilNextDailyClose(time.Now()) }
	}
	if namespace == "" {
		namespace = "charts"
	}
	return &CachingChartRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttlFn,
		namespace: namespace,
	}
}

// UpsertBatch stores charts and invalidates the cached history of each affected coin.
func (c *CachingChartRepository) UpsertBatch(ctx context.Context, charts []entity.Chart) error {
	if err := c.inner.UpsertBatch(ctx, charts); err != nil {
		return err
	}
	if c.rdb == nil || len(charts) == 0 {
		return nil
	}

	seen := map[uint]struct{}{}
	keys := make([]string, 0, 1)
	for _, ch := range charts {
		if _, ok := seen[ch.CoinID]; ok {
			continue
		}
		seen[ch.CoinID] = struct{}{}
		keys = append(keys, c.cacheKey(ch.CoinID))
	}
	_ = c.rdb.Del(ctx, keys...).Err() // Best effort
	return nil
}

// FindAllByCoinID checks the cache first and falls back to the database.
func (c *CachingChartRepository) FindAllByCoinID(ctx context.Context, coinID uint) ([]entity.Chart, error) {
	if c.rdb == nil {
		return c.inner.FindAllByCoinID(ctx, coinID)
	}

	key := c.cacheKey(coinID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Chart
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindAllByCoinID(ctx, coinID)
	if err != nil {
		return nil, err
	}

	// Empty histories are not cached.
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
		}
	}
	return out, nil
}

// FindByDateAndCoinID is not cached.
func (c *CachingChartRepository) FindByDateAndCoinID(ctx context.Context, date time.Time, coinID uint) (*entity.Chart, error) {
	return c.inner.FindByDateAndCoinID(ctx, date, coinID)
}

func (c *CachingChartRepository) cacheKey(coinID uint) string {
	return fmt.Sprintf("%s:coin:%d", c.namespace, coinID)
}
