package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/transport/http/dto"
	"coin_backend/internal/platform/http/response"
	"coin_backend/internal/shared/pagination"

	"github.com/gin-gonic/gin"
)

// AdminCoinUsecase は管理者向けコイン管理のユースケースです。
type AdminCoinUsecase interface {
	SetDisplay(ctx context.Context, coinID uint, displayed bool) error
	ListCoins(ctx context.Context, keyword string, page, size int, sort string) (pagination.Page[entity.Coin], error)
	GetCoin(ctx context.Context, coinID uint) (*entity.Coin, error)
}

// AdminCoinHandler は管理者向けコイン API を処理します。
type AdminCoinHandler struct {
	uc AdminCoinUsecase
}

// NewAdminCoinHandler は新しい AdminCoinHandler を作成します。
func NewAdminCoinHandler(uc AdminCoinUsecase) *AdminCoinHandler {
	return &AdminCoinHandler{uc: uc}
}

// ListCoins はキーワード・ページ・ソート指定でコインを検索します。
//
// GET /api/v1/admin/coins?keyword=bit&page=0&size=10&sort=koreanName,desc
func (h *AdminCoinHandler) ListCoins(c *gin.Context) {
	page, size, ok := response.PageParams(c)
	if !ok {
		return
	}

	p, err := h.uc.ListCoins(c.Request.Context(), c.Query("keyword"), page, size, c.Query("sort"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(p, dto.FromAdminListItem))
}

// GetCoin は管理者向けのコイン詳細を返します。
//
// GET /api/v1/admin/coins/:coinId
func (h *AdminCoinHandler) GetCoin(c *gin.Context) {
	id, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	coin, err := h.uc.GetCoin(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAdminDetail(coin))
}

// SetDisplay はコインの公開設定を変更します。
//
// PATCH /api/v1/admin/coins/:coinId/display?isDisplayed=true
func (h *AdminCoinHandler) SetDisplay(c *gin.Context) {
	id, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	raw, present := c.GetQuery("isDisplayed")
	displayed, err := strconv.ParseBool(raw)
	if !present || err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid isDisplayed: %q", raw))
		return
	}

	if err := h.uc.SetDisplay(c.Request.Context(), id, displayed); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coinId": id, "isDisplayed": displayed})
}
