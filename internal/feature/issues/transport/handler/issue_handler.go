package handler

import (
	"context"
	"net/http"

	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/feature/issues/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// IssueUsecase は公開 API のイシュー参照です。
type IssueUsecase interface {
	GetPublicDetail(ctx context.Context, coinID, issueID uint) (*entity.Issue, error)
}

// IssueHandler は公開イシュー API を処理します。
type IssueHandler struct {
	uc IssueUsecase
}

// NewIssueHandler は新しい IssueHandler を作成します。
func NewIssueHandler(uc IssueUsecase) *IssueHandler {
	return &IssueHandler{uc: uc}
}

// GetPublicDetail は削除されていないイシューを返します。
//
// GET /api/v1/coins/:coinId/issues/:issueId
func (h *IssueHandler) GetPublicDetail(c *gin.Context) {
	coinID, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	issueID, ok := pathID(c, "issueId")
	if !ok {
		return
	}
	issue, err := h.uc.GetPublicDetail(c.Request.Context(), coinID, issueID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPublicDetail(issue))
}
