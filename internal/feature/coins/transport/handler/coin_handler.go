// Package handler は coins フィーチャーの HTTP ハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// CoinUsecase は公開向けコイン参照のユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CoinUsecase interface {
	ListPublicCoins(ctx context.Context) ([]entity.CoinSummary, error)
	GetCoinDetail(ctx context.Context, coinID uint) (*entity.CoinDetail, error)
	GetCoinNews(ctx context.Context, coinID uint) ([]entity.NewsItem, error)
}

// CoinHandler は公開向けコイン API を処理します。
type CoinHandler struct {
	uc CoinUsecase
}

// NewCoinHandler は新しい CoinHandler を作成します。
func NewCoinHandler(uc CoinUsecase) *CoinHandler {
	return &CoinHandler{uc: uc}
}

// ListCoins は公開中のコインを現在価格付きで返します。
//
// GET /api/v1/coins
func (h *CoinHandler) ListCoins(c *gin.Context) {
	coins, err := h.uc.ListPublicCoins(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.CoinResponse, 0, len(coins))
	for _, s := range coins {
		out = append(out, dto.FromSummary(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetCoinDetail はコイン詳細を返します。
//
// GET /api/v1/coins/:coinId
func (h *CoinHandler) GetCoinDetail(c *gin.Context) {
	id, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	d, err := h.uc.GetCoinDetail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetail(d))
}

// GetCoinNews はコインのニュースを返します。
//
// GET /api/v1/coins/:coinId/news
func (h *CoinHandler) GetCoinNews(c *gin.Context) {
	id, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	news, err := h.uc.GetCoinNews(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.CoinNewsResponse, 0, len(news))
	for _, n := range news {
		out = append(out, dto.FromNews(n))
	}
	c.JSON(http.StatusOK, out)
}
