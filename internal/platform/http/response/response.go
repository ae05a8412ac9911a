// Package response は API 共通のエラーレスポンスとページングレスポンスを提供します。
package response

import (
	"log/slog"
	"net/http"

	"coin_backend/internal/shared/pagination"

	"github.com/gin-gonic/gin"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// PageResponse はページング検索結果のレスポンスボディです。
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage は Page を変換関数で DTO に詰め替えます。
func NewPage[T, U any](p pagination.Page[T], fn func(T) U) PageResponse[U] {
	mapped := pagination.Map(p, fn)
	return PageResponse[U]{
		Content:       mapped.Items,
		Page:          mapped.Page,
		Size:          mapped.Size,
		TotalElements: mapped.Total,
		TotalPages:    mapped.TotalPages(),
	}
}

// PageParams は page と size のクエリを検証します。不正な値の場合は 400 を返し ok=false になります。
func PageParams(c *gin.Context) (page, size int, ok bool) {
	page, size, err := pagination.ParseParams(c.Query("page"), c.Query("size"))
	if err != nil {
		Error(c, http.StatusBadRequest, err)
		return 0, 0, false
	}
	return page, size, true
}

// Error は status と err をログに記録し、ErrorResponse を返します。
// 5xx の場合は内部の詳細を返さずステータス文言のみを返します。
func Error(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
		msg := http.StatusText(status)
		if status == http.StatusBadGateway {
			msg = err.Error()
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	slog.Warn("request rejected", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
