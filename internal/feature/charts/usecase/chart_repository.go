package usecase

import (
	"context"
	"time"

	"coin_backend/internal/feature/charts/domain/entity"
)

// ChartRepository は日足チャートの永続化を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ChartRepository interface {
	// FindAllByCoinID はコインの全チャート行を日付昇順で返します。
	FindAllByCoinID(ctx context.Context, coinID uint) ([]entity.Chart, error)
	// FindByDateAndCoinID は該当行がない場合 ErrChartNotFound を返します。
	FindByDateAndCoinID(ctx context.Context, date time.Time, coinID uint) (*entity.Chart, error)
	// UpsertBatch は (coin_id, date) の衝突時に価格を上書きします。
	UpsertBatch(ctx context.Context, charts []entity.Chart) error
}
