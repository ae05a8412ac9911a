package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coin_backend/internal/feature/coins/domain/entity"
)

// SeedUsecase は取引所のマーケット一覧からコインカタログを初期化します。何度実行しても同じ状態になります。
type SeedUsecase struct {
	coins        CoinRepository
	symbols      SymbolRepository
	markets      MarketClient
	maxDisplayed int
	prune        bool
}

// NewSeedUsecase は新しい SeedUsecase を作成します。
// prune が true の場合、既知のシンボルに該当しないコインをカタログから削除します。
func NewSeedUsecase(coins CoinRepository, symbols SymbolRepository, markets MarketClient, maxDisplayed int, prune bool) *SeedUsecase {
	if maxDisplayed <= 0 {
		maxDisplayed = DefaultMaxDisplayedCoins
	}
	return &SeedUsecase{coins: coins, symbols: symbols, markets: markets, maxDisplayed: maxDisplayed, prune: prune}
}

// Run はシンボルの準備、KRW マーケットの取り込み、不要コインの削除、初期公開設定を順に行います。
func (u *SeedUsecase) Run(ctx context.Context) error {
	start := time.Now()
	slog.Info("catalog seed started")

	symbolIDs, err := u.prepareSymbols(ctx)
	if err != nil {
		return fmt.Errorf("prepare symbols: %w", err)
	}

	markets, err := u.markets.GetMarkets(ctx)
	if err != nil {
		return fmt.Errorf("get markets: %w", err)
	}
	coins := make([]entity.Coin, 0, len(markets))
	for _, m := range markets {
		if !m.IsKRW() {
			continue
		}
		id, ok := symbolIDs[SymbolCodeFor(m.Code)]
		if !ok {
			slog.Error("prepared symbol missing, skipping coin", "market", m.Code)
			continue
		}
		coins = append(coins, entity.Coin{
			KoreanName:   m.KoreanName,
			EnglishName:  m.EnglishName,
			Code:         m.Code,
			CoinSymbolID: &id,
		})
	}
	if err := u.coins.SaveAll(ctx, coins); err != nil {
		return fmt.Errorf("save coins: %w", err)
	}
	slog.Info("coins saved", "count", len(coins))

	if u.prune {
		if err := u.pruneUnknown(ctx); err != nil {
			return fmt.Errorf("prune coins: %w", err)
		}
	}

	if err := u.ensureDisplayed(ctx); err != nil {
		return fmt.Errorf("default display settings: %w", err)
	}

	slog.Info("catalog seed finished", "elapsed", time.Since(start))
	return nil
}

// prepareSymbols は既知シンボルのうち未登録のものを作成し、コードから ID への対応を返します。
func (u *SeedUsecase) prepareSymbols(ctx context.Context) (map[string]uint, error) {
	existing, err := u.symbols.FindAllSymbols(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(existing))
	for _, s := range existing {
		ids[s.Code] = s.ID
	}

	var missing []entity.CoinSymbol
	for _, k := range KnownSymbols {
		if _, ok := ids[k.Code]; !ok {
			missing = append(missing, k.ToCoinSymbol())
		}
	}
	if len(missing) > 0 {
		saved, err := u.symbols.SaveSymbols(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, s := range saved {
			ids[s.Code] = s.ID
		}
		slog.Info("coin symbols created", "count", len(saved))
	}
	return ids, nil
}

// pruneUnknown は DEFAULT シンボルに割り当てられたコインを削除します。
func (u *SeedUsecase) pruneUnknown(ctx context.Context) error {
	all, err := u.coins.FindAll(ctx)
	if err != nil {
		return err
	}
	keep := make([]uint, 0, len(all))
	for _, c := range all {
		if SymbolCodeFor(c.Code) != DefaultSymbolCode {
			keep = append(keep, c.ID)
		}
	}
	if len(keep) == 0 {
		slog.Warn("no known coins in catalog, skipping prune")
		return nil
	}
	deleted, err := u.coins.DeleteWhereIDNotIn(ctx, keep)
	if err != nil {
		return err
	}
	slog.Info("unknown coins pruned", "deleted", deleted)
	return nil
}

// ensureDisplayed は公開中のコインが1件もない場合に限り、DefaultDisplayedMarkets を上限まで公開します。
func (u *SeedUsecase) ensureDisplayed(ctx context.Context) error {
	count, err := u.coins.CountDisplayed(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	found, err := u.coins.FindByCodeIn(ctx, DefaultDisplayedMarkets)
	if err != nil {
		return err
	}
	byCode := make(map[string]entity.Coin, len(found))
	for _, c := range found {
		byCode[c.Code] = c
	}

	displayed := 0
	for _, code := range DefaultDisplayedMarkets {
		if displayed >= u.maxDisplayed {
			break
		}
		c, ok := byCode[code]
		if !ok {
			continue
		}
		c.IsDisplayed = true
		if err := u.coins.Save(ctx, &c); err != nil {
			return err
		}
		displayed++
	}
	slog.Info("default coins displayed", "count", displayed)
	return nil
}
