// Package usecase はコインの公開・集約に関するビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"coin_backend/internal/feature/coins/domain/entity"
)

// CoinUsecase は公開向けのコイン一覧・詳細・ニュースを組み立てます。
type CoinUsecase struct {
	coins   CoinRepository
	charts  ChartReader
	issues  IssueReader
	tickers TickerClient
	news    NewsClient
}

// NewCoinUsecase は新しい CoinUsecase を作成します。
func NewCoinUsecase(coins CoinRepository, charts ChartReader, issues IssueReader, tickers TickerClient, news NewsClient) *CoinUsecase {
	return &CoinUsecase{coins: coins, charts: charts, issues: issues, tickers: tickers, news: news}
}

// ListPublicCoins は公開中のコインを現在のティッカーと合わせて返します。
// ティッカーは全コード分を1回の呼び出しで取得します。
func (u *CoinUsecase) ListPublicCoins(ctx context.Context) ([]entity.CoinSummary, error) {
	coins, err := u.coins.FindDisplayed(ctx)
	if err != nil {
		return nil, fmt.Errorf("find displayed coins: %w", err)
	}
	if len(coins) == 0 {
		return nil, ErrNoDisplayableCoins
	}

	codes := make([]string, 0, len(coins))
	for _, c := range coins {
		codes = append(codes, c.Code)
	}
	tickers, err := u.tickers.GetTickers(ctx, codes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTickerUnavailable, err)
	}
	byMarket := make(map[string]entity.Ticker, len(tickers))
	for _, t := range tickers {
		byMarket[t.Market] = t
	}

	out := make([]entity.CoinSummary, 0, len(coins))
	for _, c := range coins {
		t, ok := byMarket[c.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTickerUnavailable, c.Code)
		}
		out = append(out, entity.CoinSummary{
			CoinID:            c.ID,
			KoreanName:        c.KoreanName,
			EnglishName:       c.EnglishName,
			Symbol:            c.DisplaySymbol(),
			CoinSymbol:        c.Symbol,
			TradePrice:        t.TradePrice,
			SignedChangePrice: t.SignedChangePrice,
			SignedChangeRate:  t.SignedChangeRate,
		})
	}
	return out, nil
}

// GetCoinDetail はチャート系列・現在値・有効なイシューを含むコイン詳細を返します。
func (u *CoinUsecase) GetCoinDetail(ctx context.Context, coinID uint) (*entity.CoinDetail, error) {
	coin, err := u.coins.FindByID(ctx, coinID)
	if err != nil {
		return nil, err
	}

	charts, err := u.charts.FindAllByCoinID(ctx, coin.ID)
	if err != nil {
		return nil, fmt.Errorf("find charts: %w", err)
	}
	if len(charts) == 0 {
		return nil, ErrNoChartData
	}

	tickers, err := u.tickers.GetTickers(ctx, coin.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTickerUnavailable, err)
	}
	ticker, ok := findTicker(tickers, coin.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTickerUnavailable, coin.Code)
	}
	ts, err := ticker.Timestamp()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTickerUnavailable, err)
	}

	issues, err := u.issues.FindActiveByCoinID(ctx, coin.ID)
	if err != nil {
		return nil, fmt.Errorf("find issues: %w", err)
	}
	markers := make([]entity.IssueMarker, 0, len(issues))
	for _, is := range issues {
		m := entity.IssueMarker{IssueID: is.ID, Date: is.Date, Chart: is.Chart}
		if is.Chart != nil {
			m.Date = is.Chart.Date
		}
		markers = append(markers, m)
	}

	return &entity.CoinDetail{
		CoinID:            coin.ID,
		KoreanName:        coin.KoreanName,
		EnglishName:       coin.EnglishName,
		Symbol:            coin.DisplaySymbol(),
		CoinSymbol:        coin.Symbol,
		TradePrice:        ticker.TradePrice,
		SignedChangePrice: ticker.SignedChangePrice,
		SignedChangeRate:  ticker.SignedChangeRate,
		Timestamp:         ts,
		Charts:            charts,
		Issues:            markers,
	}, nil
}

// GetCoinNews はコインの韓国語名でニュースを検索します。
// 公開日時を解析できない項目が1件でもあれば全体を ErrNewsDateParse で失敗させます。
func (u *CoinUsecase) GetCoinNews(ctx context.Context, coinID uint) ([]entity.NewsItem, error) {
	coin, err := u.coins.FindByID(ctx, coinID)
	if err != nil {
		return nil, err
	}

	results, err := u.news.Search(ctx, coin.KoreanName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNewsUnavailable, err)
	}

	out := make([]entity.NewsItem, 0, len(results))
	for _, r := range results {
		published, err := time.Parse(entity.NewsDateLayout, r.PubDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNewsDateParse, r.PubDate)
		}
		out = append(out, entity.NewsItem{
			Title:       r.Title,
			Link:        r.Link,
			Description: r.Description,
			PublishedAt: published,
		})
	}
	return out, nil
}

func findTicker(tickers []entity.Ticker, market string) (entity.Ticker, bool) {
	for _, t := range tickers {
		if t.Market == market {
			return t, true
		}
	}
	return entity.Ticker{}, false
}
