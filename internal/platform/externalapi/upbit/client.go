package upbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
	chartusecase "coin_backend/internal/feature/charts/usecase"
	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/platform/externalapi/upbit/dto"
)

const candleTimeLayout = "2006-01-02T15:04:05"

// Client は Upbit の公開 API から相場情報を取得します。
type Client struct {
	cfg    Config
	client *http.Client
}

// Client が各ユースケースのポートを実装していることをコンパイル時に検証します。
var (
	_ usecase.TickerClient      = (*Client)(nil)
	_ usecase.MarketClient      = (*Client)(nil)
	_ chartusecase.CandleSource = (*Client)(nil)
)

func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// get は path にリクエストし、レスポンスを out にデコードします。
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var body dto.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Error.Message != "" {
			return fmt.Errorf("upbit http %d: %s", res.StatusCode, body.Error.Message)
		}
		return fmt.Errorf("upbit http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("upbit decode %s: %w", path, err)
	}
	return nil
}

// GetTickers は指定したマーケットの現在価格を 1 回のリクエストで取得します。
func (c *Client) GetTickers(ctx context.Context, codes ...string) ([]entity.Ticker, error) {
	if len(codes) == 0 {
		return []entity.Ticker{}, nil
	}
	q := url.Values{}
	q.Set("markets", strings.Join(codes, ","))

	var body []dto.TickerResponse
	if err := c.get(ctx, "/v1/ticker", q, &body); err != nil {
		return nil, err
	}

	tickers := make([]entity.Ticker, 0, len(body))
	for _, t := range body {
		tickers = append(tickers, entity.Ticker{
			Market:            t.Market,
			TradePrice:        t.TradePrice,
			SignedChangePrice: t.SignedChangePrice,
			SignedChangeRate:  t.SignedChangeRate,
			TradeDate:         t.TradeDate,
			TradeTime:         t.TradeTime,
		})
	}
	return tickers, nil
}

// GetMarkets は取引可能なすべてのマーケットを返します。
func (c *Client) GetMarkets(ctx context.Context) ([]entity.Market, error) {
	var body []dto.MarketResponse
	if err := c.get(ctx, "/v1/market/all", nil, &body); err != nil {
		return nil, err
	}

	markets := make([]entity.Market, 0, len(body))
	for _, m := range body {
		markets = append(markets, entity.Market{
			Code:        m.Market,
			KoreanName:  m.KoreanName,
			EnglishName: m.EnglishName,
		})
	}
	return markets, nil
}

// GetDailyCandles は直近 count 日分の日足を返します。日付は UTC の 0 時に揃えます。
func (c *Client) GetDailyCandles(ctx context.Context, market string, count int) ([]chartentity.Chart, error) {
	q := url.Values{}
	q.Set("market", market)
	q.Set("count", strconv.Itoa(count))

	var body []dto.CandleResponse
	if err := c.get(ctx, "/v1/candles/days", q, &body); err != nil {
		return nil, err
	}

	charts := make([]chartentity.Chart, 0, len(body))
	for _, cd := range body {
		tm, err := time.ParseInLocation(candleTimeLayout, cd.CandleDateTimeUTC, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse candle time %q: %w", cd.CandleDateTimeUTC, err)
		}
		charts = append(charts, chartentity.Chart{
			Date:         chartentity.TruncateDate(tm),
			OpeningPrice: cd.OpeningPrice,
			HighPrice:    cd.HighPrice,
			LowPrice:     cd.LowPrice,
			TradePrice:   cd.TradePrice,
			ChangePrice:  cd.ChangePrice,
			ChangeRate:   cd.ChangeRate,
		})
	}
	return charts, nil
}
