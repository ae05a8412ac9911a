package usecase

import (
	"context"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/feature/coins/domain/entity"
	issueentity "coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/shared/pagination"
)

// CoinRepository はコインカタログの永続化を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CoinRepository interface {
	// FindByID は該当行がない場合 ErrCoinNotFound を返します。シンボル情報を付与します。
	FindByID(ctx context.Context, id uint) (*entity.Coin, error)
	FindAll(ctx context.Context) ([]entity.Coin, error)
	FindDisplayed(ctx context.Context) ([]entity.Coin, error)
	FindByCodeIn(ctx context.Context, codes []string) ([]entity.Coin, error)
	FindPage(ctx context.Context, req pagination.Request) (pagination.Page[entity.Coin], error)
	// SearchByKeyword は pattern（LIKE 形式、小文字）を韓国語名・英語名・コードに対して大文字小文字を区別せずに照合します。
	SearchByKeyword(ctx context.Context, pattern string, req pagination.Request) (pagination.Page[entity.Coin], error)
	CountDisplayed(ctx context.Context) (int64, error)
	Save(ctx context.Context, coin *entity.Coin) error
	// SaveAll はコードをキーに挿入または更新します。既存行の表示フラグは変更しません。
	SaveAll(ctx context.Context, coins []entity.Coin) error
	// DeleteWhereIDNotIn は ids 以外のコインを削除し、削除件数を返します。
	DeleteWhereIDNotIn(ctx context.Context, ids []uint) (int64, error)
	// Serializable は fn を直列化可能なトランザクション内で実行します。
	Serializable(ctx context.Context, fn func(repo CoinRepository) error) error
}

// SymbolRepository はコインシンボルの永続化を抽象化します。
type SymbolRepository interface {
	FindAllSymbols(ctx context.Context) ([]entity.CoinSymbol, error)
	// SaveSymbols は採番済みのシンボルを返します。
	SaveSymbols(ctx context.Context, symbols []entity.CoinSymbol) ([]entity.CoinSymbol, error)
}

// ChartReader はコインのチャート系列を読み取ります。
type ChartReader interface {
	FindAllByCoinID(ctx context.Context, coinID uint) ([]chartentity.Chart, error)
}

// IssueReader はコインの有効な（削除されていない）イシューを読み取ります。
type IssueReader interface {
	FindActiveByCoinID(ctx context.Context, coinID uint) ([]issueentity.Issue, error)
}

// TickerClient は取引所から現在のティッカーを取得します。応答の順序は保証されません。
type TickerClient interface {
	GetTickers(ctx context.Context, codes ...string) ([]entity.Ticker, error)
}

// MarketClient は取引所の上場マーケット一覧を取得します。
type MarketClient interface {
	GetMarkets(ctx context.Context) ([]entity.Market, error)
}

// NewsClient は検索語でニュースを検索します。
type NewsClient interface {
	Search(ctx context.Context, term string) ([]entity.NewsSearchResult, error)
}
