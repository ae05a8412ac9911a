package usecase

import (
	"context"
	"time"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
	coinentity "coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/shared/pagination"
)

// IssueRepository はイシューの永続化を抽象化します。物理削除は提供しません。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type IssueRepository interface {
	// FindByID は削除済みも含めて検索し、行がない場合 ErrIssueNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Issue, error)
	// FindAllByID は見つかった行のみを返します。
	FindAllByID(ctx context.Context, ids []uint) ([]entity.Issue, error)
	// FindActivePageByCoinID は削除されていないイシューを作成日時の降順で返します。
	FindActivePageByCoinID(ctx context.Context, coinID uint, req pagination.Request) (pagination.Page[entity.Issue], error)
	// Save は ID が 0 なら作成、そうでなければ更新し、採番済み ID と監査時刻を反映します。
	Save(ctx context.Context, issue *entity.Issue) error
	SaveAll(ctx context.Context, issues []entity.Issue) error
}

// CoinReader はイシューの所属コインを確認します。
type CoinReader interface {
	FindByID(ctx context.Context, id uint) (*coinentity.Coin, error)
}

// ChartFinder はイシューの日付に一致するチャート行を検索します。
type ChartFinder interface {
	FindByDateAndCoinID(ctx context.Context, date time.Time, coinID uint) (*chartentity.Chart, error)
}
