package entity

import (
	"time"

	chartentity "coin_backend/internal/feature/charts/domain/entity"

	"github.com/shopspring/decimal"
)

// CoinSummary is a displayed coin merged with its live ticker.
type CoinSummary struct {
	CoinID            uint
	KoreanName        string
	EnglishName       string
	Symbol            string // Derived display symbol
	CoinSymbol        *CoinSymbol
	TradePrice        decimal.Decimal
	SignedChangePrice decimal.Decimal
	SignedChangeRate  decimal.Decimal
}

// IssueMarker is an issue annotation placed on the price chart.
// Chart is nil when the issue was stored without a matching chart row.
type IssueMarker struct {
	IssueID uint
	Date    time.Time
	Chart   *chartentity.Chart
}

// CoinDetail is the public detail view of a coin.
type CoinDetail struct {
	CoinID            uint
	KoreanName        string
	EnglishName       string
	Symbol            string
	CoinSymbol        *CoinSymbol
	TradePrice        decimal.Decimal
	SignedChangePrice decimal.Decimal
	SignedChangeRate  decimal.Decimal
	Timestamp         string
	Charts            []chartentity.Chart
	Issues            []IssueMarker
}
