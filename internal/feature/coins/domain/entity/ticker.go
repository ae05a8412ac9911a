package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	tradeDateLayout = "20060102"
	tradeTimeLayout = "150405"
	// TimestampLayout is the human-readable layout of a ticker timestamp.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Ticker is a live price snapshot for one market code. It is never persisted.
type Ticker struct {
	Market            string // "KRW-BTC"
	TradePrice        decimal.Decimal
	SignedChangePrice decimal.Decimal
	SignedChangeRate  decimal.Decimal
	TradeDate         string // "20240110" (UTC)
	TradeTime         string // "093000" (UTC)
}

// TradedAt combines TradeDate and TradeTime into one instant.
func (t Ticker) TradedAt() (time.Time, error) {
	ts, err := time.ParseInLocation(tradeDateLayout+tradeTimeLayout, t.TradeDate+t.TradeTime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse trade time %q %q: %w", t.TradeDate, t.TradeTime, err)
	}
	return ts, nil
}

// Timestamp returns TradedAt formatted with TimestampLayout.
func (t Ticker) Timestamp() (string, error) {
	ts, err := t.TradedAt()
	if err != nil {
		return "", err
	}
	return ts.Format(TimestampLayout), nil
}
