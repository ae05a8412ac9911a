package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/feature/issues/transport/http/dto"
	"coin_backend/internal/feature/issues/usecase"
	"coin_backend/internal/platform/http/response"
	jwtmw "coin_backend/internal/platform/jwt"
	"coin_backend/internal/shared/pagination"

	"github.com/gin-gonic/gin"
)

// HeaderAdminUserID は作成者の ID を明示するヘッダーです。
const HeaderAdminUserID = "X-Admin-User-Id"

// AdminIssueUsecase は管理者向けイシュー操作のユースケースです。
type AdminIssueUsecase interface {
	ListForAdmin(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error)
	Create(ctx context.Context, coinID uint, in usecase.CreateIssueInput, authorID string) (uint, error)
	GetDetailForAdmin(ctx context.Context, issueID uint) (*entity.Issue, error)
	Update(ctx context.Context, issueID uint, in usecase.UpdateIssueInput) error
	BulkSoftDelete(ctx context.Context, ids []uint) error
}

// AdminIssueHandler は管理者向けイシュー API を処理します。
type AdminIssueHandler struct {
	uc AdminIssueUsecase
}

// NewAdminIssueHandler は新しい AdminIssueHandler を作成します。
func NewAdminIssueHandler(uc AdminIssueUsecase) *AdminIssueHandler {
	return &AdminIssueHandler{uc: uc}
}

// ListForAdmin はコインの削除されていないイシューを返します。
//
// GET /api/v1/admin/coins/:coinId/issues?page=0&size=10
func (h *AdminIssueHandler) ListForAdmin(c *gin.Context) {
	coinID, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	page, size, ok := response.PageParams(c)
	if !ok {
		return
	}

	p, err := h.uc.ListForAdmin(c.Request.Context(), coinID, page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(p, dto.FromAdminSummary))
}

// Create はイシューを作成します。
//
// POST /api/v1/admin/coins/:coinId/issues
func (h *AdminIssueHandler) Create(c *gin.Context) {
	coinID, ok := pathID(c, "coinId")
	if !ok {
		return
	}
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	id, err := h.uc.Create(c.Request.Context(), coinID, in, authorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/admin/issues/%d", id))
	c.JSON(http.StatusCreated, dto.CreateIssueResponse{IssueID: id})
}

// GetDetailForAdmin は削除済みを含めてイシュー詳細を返します。
//
// GET /api/v1/admin/issues/:issueId
func (h *AdminIssueHandler) GetDetailForAdmin(c *gin.Context) {
	id, ok := pathID(c, "issueId")
	if !ok {
		return
	}
	issue, err := h.uc.GetDetailForAdmin(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAdminDetail(issue))
}

// Update はイシューを部分更新します。
//
// PUT /api/v1/admin/issues/:issueId
func (h *AdminIssueHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "issueId")
	if !ok {
		return
	}
	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := h.uc.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issueId": id})
}

// BulkSoftDelete は複数のイシューを論理削除します。
//
// DELETE /api/v1/admin/issues?ids=1,2,3
func (h *AdminIssueHandler) BulkSoftDelete(c *gin.Context) {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}
	if err := h.uc.BulkSoftDelete(c.Request.Context(), ids); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authorID はヘッダーを優先し、なければ JWT の subject を作成者とします。
func authorID(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(HeaderAdminUserID)); v != "" {
		return v
	}
	if v, ok := c.Get(jwtmw.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return strconv.FormatUint(uint64(id), 10)
		}
	}
	return ""
}

func parseIDs(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("ids is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("invalid id: %q", p)
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}
