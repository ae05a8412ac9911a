package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/shared/pagination"
)

// DefaultMaxDisplayedCoins は同時に公開できるコイン数の既定上限です。
const DefaultMaxDisplayedCoins = 7

// AdminCoinUsecase は管理者向けのコイン管理（公開設定・一覧・詳細）を提供します。
type AdminCoinUsecase struct {
	coins        CoinRepository
	maxDisplayed int
}

// NewAdminCoinUsecase は新しい AdminCoinUsecase を作成します。
// maxDisplayed が 0 以下の場合は DefaultMaxDisplayedCoins を使用します。
func NewAdminCoinUsecase(coins CoinRepository, maxDisplayed int) *AdminCoinUsecase {
	if maxDisplayed <= 0 {
		maxDisplayed = DefaultMaxDisplayedCoins
	}
	return &AdminCoinUsecase{coins: coins, maxDisplayed: maxDisplayed}
}

// MaxDisplayed は公開コイン数の上限を返します。
func (u *AdminCoinUsecase) MaxDisplayed() int {
	return u.maxDisplayed
}

// SetDisplay はコインの公開フラグを変更します。
// 非公開から公開への切り替え時のみ上限を確認し、上限に達していれば ErrDisplayLimitExceeded を返します。
// 確認と更新は1つの直列化可能なトランザクション内で行います。
func (u *AdminCoinUsecase) SetDisplay(ctx context.Context, coinID uint, displayed bool) error {
	err := u.coins.Serializable(ctx, func(repo CoinRepository) error {
		coin, err := repo.FindByID(ctx, coinID)
		if err != nil {
			return err
		}
		if coin.IsDisplayed == displayed {
			return nil
		}
		if displayed {
			count, err := repo.CountDisplayed(ctx)
			if err != nil {
				return fmt.Errorf("count displayed coins: %w", err)
			}
			if count >= int64(u.maxDisplayed) {
				return fmt.Errorf("%w: max %d", ErrDisplayLimitExceeded, u.maxDisplayed)
			}
		}
		coin.IsDisplayed = displayed
		return repo.Save(ctx, coin)
	})
	if err != nil {
		return err
	}
	slog.Info("coin display setting updated", "coin_id", coinID, "is_displayed", displayed)
	return nil
}

// ListCoins は管理者向けにコインを検索します。空白でないキーワードは部分一致で照合します。
// 結果が空でもエラーにはしません。
func (u *AdminCoinUsecase) ListCoins(ctx context.Context, keyword string, page, size int, sort string) (pagination.Page[entity.Coin], error) {
	req := pagination.NewRequest(page, size, ParseSort(sort))

	pattern := KeywordPattern(keyword)
	slog.Debug("admin coin search", "pattern", pattern, "page", req.Page, "size", req.Size)
	if pattern == "" {
		return u.coins.FindPage(ctx, req)
	}
	return u.coins.SearchByKeyword(ctx, pattern, req)
}

// GetCoin は管理者向けのコイン詳細を返します。
func (u *AdminCoinUsecase) GetCoin(ctx context.Context, coinID uint) (*entity.Coin, error) {
	return u.coins.FindByID(ctx, coinID)
}

// KeywordPattern は検索キーワードを "%<小文字>%" の LIKE パターンに変換します。空白のみなら "" を返します。
func KeywordPattern(keyword string) string {
	k := strings.TrimSpace(keyword)
	if k == "" {
		return ""
	}
	return "%" + strings.ToLower(k) + "%"
}
