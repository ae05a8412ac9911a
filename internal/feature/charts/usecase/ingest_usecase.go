package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/shared/ratelimiter"
)

const (
	ingestCandleCount = 200 // 1回のリクエストで取得する日足の件数
)

// PopularMarkets は起動時に日足を取り込む対象のマーケットコードです。
var PopularMarkets = []string{"KRW-BTC", "KRW-ETH", "KRW-DOGE", "KRW-XRP", "KRW-ADA"}

// CandleSource は取引所から日足データを取得するクライアントのインターフェイスです。
type CandleSource interface {
	GetDailyCandles(ctx context.Context, market string, count int) ([]entity.Chart, error)
}

// CoinIDResolver はマーケットコードからコインIDを解決します。
type CoinIDResolver interface {
	FindIDsByCode(ctx context.Context, codes []string) (map[string]uint, error)
}

// IngestUsecase は取引所から日足を取得し、チャートとして永続化するユースケースです。
type IngestUsecase struct {
	source      CandleSource
	coins       CoinIDResolver
	chart       ChartRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source CandleSource, coins CoinIDResolver, chart ChartRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{source: source, coins: coins, chart: chart, rateLimiter: rateLimiter}
}

// ingestOne は1マーケット分の日足を取得し、コインIDと日付を正規化して一括保存します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, market string, coinID uint, count int) error {
	cs, err := iu.source.GetDailyCandles(ctx, market, count)
	if err != nil {
		return err
	}

	for i := range cs {
		cs[i].CoinID = coinID
		cs[i].Date = entity.TruncateDate(cs[i].Date)
	}
	return iu.chart.UpsertBatch(ctx, cs)
}

// IngestAll は指定されたマーケットの日足を取り込みます。
// カタログに存在しないコードはスキップし、1件の失敗で処理全体を止めません。
func (iu *IngestUsecase) IngestAll(ctx context.Context, markets []string) error {
	ids, err := iu.coins.FindIDsByCode(ctx, markets)
	if err != nil {
		return fmt.Errorf("resolve coin ids: %w", err)
	}

	for _, m := range markets {
		coinID, ok := ids[m]
		if !ok {
			slog.Warn("market not in catalog, skipping chart ingest", "market", m)
			continue
		}
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestOne(ctx, m, coinID, ingestCandleCount); err != nil {
			slog.Error("failed to ingest charts", "market", m, "error", err)
			continue
		}
		slog.Info("charts ingested", "market", m)
	}
	return nil
}
