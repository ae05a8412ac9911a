package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/feature/issues/transport/handler"
	"coin_backend/internal/feature/issues/usecase"
	jwtmw "coin_backend/internal/platform/jwt"
	"coin_backend/internal/shared/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAdminIssueUsecase は AdminIssueUsecase のモック実装です。
type mockAdminIssueUsecase struct {
	ListForAdminFunc      func(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error)
	CreateFunc            func(ctx context.Context, coinID uint, in usecase.CreateIssueInput, authorID string) (uint, error)
	GetDetailForAdminFunc func(ctx context.Context, issueID uint) (*entity.Issue, error)
	UpdateFunc            func(ctx context.Context, issueID uint, in usecase.UpdateIssueInput) error
	BulkSoftDeleteFunc    func(ctx context.Context, ids []uint) error
}

func (m *mockAdminIssueUsecase) ListForAdmin(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error) {
	return m.ListForAdminFunc(ctx, coinID, page, size)
}

func (m *mockAdminIssueUsecase) Create(ctx context.Context, coinID uint, in usecase.CreateIssueInput, authorID string) (uint, error) {
	return m.CreateFunc(ctx, coinID, in, authorID)
}

func (m *mockAdminIssueUsecase) GetDetailForAdmin(ctx context.Context, issueID uint) (*entity.Issue, error) {
	return m.GetDetailForAdminFunc(ctx, issueID)
}

func (m *mockAdminIssueUsecase) Update(ctx context.Context, issueID uint, in usecase.UpdateIssueInput) error {
	return m.UpdateFunc(ctx, issueID, in)
}

func (m *mockAdminIssueUsecase) BulkSoftDelete(ctx context.Context, ids []uint) error {
	return m.BulkSoftDeleteFunc(ctx, ids)
}

// newAdminRouter は jwtSubject が 0 でなければ認証済みユーザーとしてコンテキストに設定します。
func newAdminRouter(uc *mockAdminIssueUsecase, jwtSubject uint) *gin.Engine {
	h := handler.NewAdminIssueHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if jwtSubject != 0 {
			c.Set(jwtmw.ContextUserID, jwtSubject)
		}
		c.Next()
	})
	r.GET("/admin/coins/:coinId/issues", h.ListForAdmin)
	r.POST("/admin/coins/:coinId/issues", h.Create)
	r.GET("/admin/issues/:issueId", h.GetDetailForAdmin)
	r.PUT("/admin/issues/:issueId", h.Update)
	r.DELETE("/admin/issues", h.BulkSoftDelete)
	return r
}

var (
	jan10   = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	created = time.Date(2024, 1, 11, 9, 30, 0, 0, time.UTC)
)

func TestAdminIssueHandler_ListForAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uid := int64(42)
	uc := &mockAdminIssueUsecase{ListForAdminFunc: func(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error) {
		assert.Equal(t, uint(3), coinID)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, size)
		return pagination.Page[entity.Issue]{
			Items: []entity.Issue{
				{ID: 7, Date: jan10, Title: "ETF", UserID: &uid, CreatedAt: created, UpdatedAt: created},
				{ID: 6, Date: jan10, Title: "legacy", CreatedAt: created, UpdatedAt: created},
			},
			Page: page, Size: size, Total: 12,
		}, nil
	}}
	r := newAdminRouter(uc, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/coins/3/issues?page=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":[
		{"issueId":7,"date":"2024-01-10","title":"ETF","createdBy":"42","createdAt":"2024-01-11T09:30:00Z","updatedAt":"2024-01-11T09:30:00Z"},
		{"issueId":6,"date":"2024-01-10","title":"legacy","createdBy":"Unknown","createdAt":"2024-01-11T09:30:00Z","updatedAt":"2024-01-11T09:30:00Z"}],
		"page":1,"size":10,"totalElements":12,"totalPages":2}`, w.Body.String())
}

func TestAdminIssueHandler_ListForAdmin_InvalidPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		url  string
	}{
		{name: "non-numeric page", url: "/admin/coins/3/issues?page=abc"},
		{name: "non-numeric size", url: "/admin/coins/3/issues?size=xyz"},
		{name: "negative page", url: "/admin/coins/3/issues?page=-4"},
		{name: "oversized size", url: "/admin/coins/3/issues?page=0&size=500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockAdminIssueUsecase{ListForAdminFunc: func(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error) {
				called = true
				return pagination.Page[entity.Issue]{}, nil
			}}
			r := newAdminRouter(uc, 0)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.False(t, called)
		})
	}
}

func TestAdminIssueHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		header         string
		jwtSubject     uint
		ucErr          error
		wantCalled     bool
		wantAuthor     string
		expectedStatus int
		expectedBody   string
		wantLocation   string
	}{
		{
			name:           "success: author from header",
			body:           `{"date":"2024-01-10","title":"T","content":"C","newsTitle":"N","source":"S"}`,
			header:         "42",
			jwtSubject:     7,
			wantCalled:     true,
			wantAuthor:     "42",
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"issueId":100}`,
			wantLocation:   "/api/v1/admin/issues/100",
		},
		{
			name:           "success: author falls back to token subject",
			body:           `{"date":"2024-01-10","title":"T"}`,
			jwtSubject:     7,
			wantCalled:     true,
			wantAuthor:     "7",
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"issueId":100}`,
			wantLocation:   "/api/v1/admin/issues/100",
		},
		{
			name:           "error: non-numeric author is 400",
			body:           `{"date":"2024-01-10","title":"T"}`,
			header:         "abc",
			ucErr:          usecase.ErrInvalidAuthorID,
			wantCalled:     true,
			wantAuthor:     "abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid author id"}`,
		},
		{
			name:           "error: coin not found is 404",
			body:           `{"date":"2024-01-10","title":"T"}`,
			header:         "1",
			ucErr:          usecase.ErrCoinNotFound,
			wantCalled:     true,
			wantAuthor:     "1",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"coin not found"}`,
		},
		{
			name:           "error: malformed date is 400",
			body:           `{"date":"2024/01/10","title":"T"}`,
			header:         "1",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid date: \"2024/01/10\""}`,
		},
		{
			name:           "error: store failure is 500",
			body:           `{"date":"2024-01-10","title":"T"}`,
			header:         "1",
			ucErr:          errors.New("connection reset"),
			wantCalled:     true,
			wantAuthor:     "1",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockAdminIssueUsecase{CreateFunc: func(ctx context.Context, coinID uint, in usecase.CreateIssueInput, authorID string) (uint, error) {
				called = true
				assert.Equal(t, uint(3), coinID)
				assert.Equal(t, jan10, in.Date)
				assert.Equal(t, "T", in.Title)
				assert.Equal(t, tt.wantAuthor, authorID)
				if tt.ucErr != nil {
					return 0, tt.ucErr
				}
				return 100, nil
			}}
			r := newAdminRouter(uc, tt.jwtSubject)

			req := httptest.NewRequest(http.MethodPost, "/admin/coins/3/issues", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set(handler.HeaderAdminUserID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestAdminIssueHandler_Create_MissingTitle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := newAdminRouter(&mockAdminIssueUsecase{}, 1)

	req := httptest.NewRequest(http.MethodPost, "/admin/coins/3/issues", strings.NewReader(`{"date":"2024-01-10"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminIssueHandler_GetDetailForAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	chartID := uint(77)
	uc := &mockAdminIssueUsecase{GetDetailForAdminFunc: func(ctx context.Context, issueID uint) (*entity.Issue, error) {
		if issueID != 5 {
			return nil, usecase.ErrIssueNotFound
		}
		return &entity.Issue{ID: 5, CoinID: 3, ChartID: &chartID, Date: jan10, Title: "T", Content: "C", NewsTitle: "N",
			Source: "S", Type: entity.TypeManual, IsDeleted: true, CreatedAt: created, UpdatedAt: created}, nil
	}}
	r := newAdminRouter(uc, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/issues/5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"issueId":5,"coinId":3,"chartId":77,"date":"2024-01-10","title":"T","content":"C","newsTitle":"N",
		"source":"S","type":"MANUAL","createdBy":"Unknown","isDeleted":true,
		"createdAt":"2024-01-11T09:30:00Z","updatedAt":"2024-01-11T09:30:00Z"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/issues/6", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"issue not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/issues/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminIssueHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got usecase.UpdateIssueInput
	uc := &mockAdminIssueUsecase{UpdateFunc: func(ctx context.Context, issueID uint, in usecase.UpdateIssueInput) error {
		if issueID != 5 {
			return usecase.ErrIssueNotFound
		}
		got = in
		return nil
	}}
	r := newAdminRouter(uc, 0)

	req := httptest.NewRequest(http.MethodPut, "/admin/issues/5", strings.NewReader(`{"title":"New","source":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"issueId":5}`, w.Body.String())
	require.NotNil(t, got.Title)
	assert.Equal(t, "New", *got.Title)
	require.NotNil(t, got.Source)
	assert.Equal(t, "", *got.Source)
	assert.Nil(t, got.Content)
	assert.Nil(t, got.NewsTitle)

	req = httptest.NewRequest(http.MethodPut, "/admin/issues/9", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPut, "/admin/issues/5", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminIssueHandler_BulkSoftDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		wantIDs        []uint
		expectedStatus int
	}{
		{name: "success", url: "/admin/issues?ids=1,2,99", wantIDs: []uint{1, 2, 99}, expectedStatus: http.StatusNoContent},
		{name: "spaces are trimmed", url: "/admin/issues?ids=1,%202", wantIDs: []uint{1, 2}, expectedStatus: http.StatusNoContent},
		{name: "missing ids", url: "/admin/issues", expectedStatus: http.StatusBadRequest},
		{name: "empty ids", url: "/admin/issues?ids=", expectedStatus: http.StatusBadRequest},
		{name: "malformed id", url: "/admin/issues?ids=1,x", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uint
			uc := &mockAdminIssueUsecase{BulkSoftDeleteFunc: func(ctx context.Context, ids []uint) error {
				got = ids
				return nil
			}}
			r := newAdminRouter(uc, 0)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}
