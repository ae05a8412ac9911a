// Package dto defines data transfer objects for the Upbit API responses.
package dto

import "github.com/shopspring/decimal"

// TickerResponse is one element of the /v1/ticker response.
type TickerResponse struct {
	Market            string          `json:"market"`
	TradeDate         string          `json:"trade_date"` // UTC, yyyyMMdd
	TradeTime         string          `json:"trade_time"` // UTC, HHmmss
	TradePrice        decimal.Decimal `json:"trade_price"`
	SignedChangePrice decimal.Decimal `json:"signed_change_price"`
	SignedChangeRate  decimal.Decimal `json:"signed_change_rate"`
}

// MarketResponse is one element of the /v1/market/all response.
type MarketResponse struct {
	Market      string `json:"market"`
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}

// CandleResponse is one element of the /v1/candles/days response.
type CandleResponse struct {
	Market            string          `json:"market"`
	CandleDateTimeUTC string          `json:"candle_date_time_utc"`
	OpeningPrice      decimal.Decimal `json:"opening_price"`
	HighPrice         decimal.Decimal `json:"high_price"`
	LowPrice          decimal.Decimal `json:"low_price"`
	TradePrice        decimal.Decimal `json:"trade_price"`
	ChangePrice       decimal.Decimal `json:"change_price"`
	ChangeRate        decimal.Decimal `json:"change_rate"`
}

// ErrorResponse is the body Upbit returns with 4xx statuses.
type ErrorResponse struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}
