// Package dto は coins フィーチャーの HTTP レスポンス DTO を定義します。
package dto

import (
	"time"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/feature/coins/domain/entity"
)

// CoinSymbolResponse はシンボルのメタデータです。
type CoinSymbolResponse struct {
	ID      uint   `json:"id"`
	Code    string `json:"code"`
	Color   string `json:"color"`
	LogoURL string `json:"logoUrl"`
}

// CoinResponse は公開コイン一覧の1要素です。
type CoinResponse struct {
	CoinID            uint                `json:"coinId"`
	KoreanName        string              `json:"koreanName"`
	EnglishName       string              `json:"englishName"`
	Code              string              `json:"code"` // 表示シンボル（"BTC"）
	CoinSymbol        *CoinSymbolResponse `json:"coinSymbol"`
	TradePrice        float64             `json:"tradePrice"`
	SignedChangePrice float64             `json:"signedChangePrice"`
	SignedChangeRate  float64             `json:"signedChangeRate"`
}

// ChartResponse は日足1本分のデータです。
type ChartResponse struct {
	ChartID      uint    `json:"chartId"`
	Date         string  `json:"date"`
	OpeningPrice float64 `json:"openingPrice"`
	HighPrice    float64 `json:"highPrice"`
	LowPrice     float64 `json:"lowPrice"`
	TradePrice   float64 `json:"tradePrice"`
	ChangeRate   float64 `json:"changeRate"`
	ChangePrice  float64 `json:"changePrice"`
}

// IssueMarkerResponse はチャート上のイシューの位置と、その日の OHLC です。
// チャート行のないイシューでは chartId と価格が null になります。
type IssueMarkerResponse struct {
	IssueID      uint     `json:"issueId"`
	ChartID      *uint    `json:"chartId"`
	Date         string   `json:"date"`
	OpeningPrice *float64 `json:"openingPrice"`
	HighPrice    *float64 `json:"highPrice"`
	LowPrice     *float64 `json:"lowPrice"`
	TradePrice   *float64 `json:"tradePrice"`
}

// CoinDetailResponse は公開コイン詳細です。
type CoinDetailResponse struct {
	CoinID            uint                  `json:"coinId"`
	KoreanName        string                `json:"koreanName"`
	EnglishName       string                `json:"englishName"`
	Code              string                `json:"code"`
	CoinSymbol        *CoinSymbolResponse   `json:"coinSymbol"`
	TradePrice        float64               `json:"tradePrice"`
	SignedChangePrice float64               `json:"signedChangePrice"`
	SignedChangeRate  float64               `json:"signedChangeRate"`
	Timestamp         string                `json:"timestamp"`
	ChartList         []ChartResponse       `json:"chartList"`
	IssueList         []IssueMarkerResponse `json:"issueList"`
}

// CoinNewsResponse はニュース1件です。
type CoinNewsResponse struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
}

// FromSymbol は nil を許容してシンボル DTO に変換します。
func FromSymbol(s *entity.CoinSymbol) *CoinSymbolResponse {
	if s == nil {
		return nil
	}
	return &CoinSymbolResponse{ID: s.ID, Code: s.Code, Color: s.Color, LogoURL: s.LogoURL}
}

// FromSummary は CoinSummary を変換します。
func FromSummary(s entity.CoinSummary) CoinResponse {
	return CoinResponse{
		CoinID:            s.CoinID,
		KoreanName:        s.KoreanName,
		EnglishName:       s.EnglishName,
		Code:              s.Symbol,
		CoinSymbol:        FromSymbol(s.CoinSymbol),
		TradePrice:        s.TradePrice.InexactFloat64(),
		SignedChangePrice: s.SignedChangePrice.InexactFloat64(),
		SignedChangeRate:  s.SignedChangeRate.InexactFloat64(),
	}
}

// FromChart は Chart を変換します。
func FromChart(c chartentity.Chart) ChartResponse {
	return ChartResponse{
		ChartID:      c.ID,
		Date:         c.Date.Format(chartentity.DateLayout),
		OpeningPrice: c.OpeningPrice.InexactFloat64(),
		HighPrice:    c.HighPrice.InexactFloat64(),
		LowPrice:     c.LowPrice.InexactFloat64(),
		TradePrice:   c.TradePrice.InexactFloat64(),
		ChangeRate:   c.ChangeRate.InexactFloat64(),
		ChangePrice:  c.ChangePrice.InexactFloat64(),
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// FromIssueMarker は IssueMarker を変換します。
func FromIssueMarker(m entity.IssueMarker) IssueMarkerResponse {
	out := IssueMarkerResponse{IssueID: m.IssueID, Date: m.Date.Format(chartentity.DateLayout)}
	if m.Chart != nil {
		id := m.Chart.ID
		out.ChartID = &id
		out.OpeningPrice = floatPtr(m.Chart.OpeningPrice.InexactFloat64())
		out.HighPrice = floatPtr(m.Chart.HighPrice.InexactFloat64())
		out.LowPrice = floatPtr(m.Chart.LowPrice.InexactFloat64())
		out.TradePrice = floatPtr(m.Chart.TradePrice.InexactFloat64())
	}
	return out
}

// FromDetail は CoinDetail を変換します。
func FromDetail(d *entity.CoinDetail) CoinDetailResponse {
	charts := make([]ChartResponse, 0, len(d.Charts))
	for _, c := range d.Charts {
		charts = append(charts, FromChart(c))
	}
	issues := make([]IssueMarkerResponse, 0, len(d.Issues))
	for _, m := range d.Issues {
		issues = append(issues, FromIssueMarker(m))
	}
	return CoinDetailResponse{
		CoinID:            d.CoinID,
		KoreanName:        d.KoreanName,
		EnglishName:       d.EnglishName,
		Code:              d.Symbol,
		CoinSymbol:        FromSymbol(d.CoinSymbol),
		TradePrice:        d.TradePrice.InexactFloat64(),
		SignedChangePrice: d.SignedChangePrice.InexactFloat64(),
		SignedChangeRate:  d.SignedChangeRate.InexactFloat64(),
		Timestamp:         d.Timestamp,
		ChartList:         charts,
		IssueList:         issues,
	}
}

// FromNews は NewsItem を変換します。
func FromNews(n entity.NewsItem) CoinNewsResponse {
	return CoinNewsResponse{Title: n.Title, Link: n.Link, Description: n.Description, PublishedAt: n.PublishedAt}
}
