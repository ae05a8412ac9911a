// Package entity defines the domain models for the charts feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chart is one daily OHLC row of a coin. Rows are unique per (CoinID, Date)
// and are never modified by request handling once stored.
type Chart struct {
	ID           uint
	CoinID       uint
	Date         time.Time // Calendar date (midnight UTC)
	OpeningPrice decimal.Decimal
	HighPrice    decimal.Decimal
	LowPrice     decimal.Decimal
	TradePrice   decimal.Decimal // Closing price of the day
	ChangeRate   decimal.Decimal
	ChangePrice  decimal.Decimal
}

// DateLayout is the wire format of a chart date.
const DateLayout = "2006-01-02"

// TruncateDate drops the time-of-day part and normalizes t to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
