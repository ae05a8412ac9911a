package dto

import (
	"time"

	"coin_backend/internal/feature/issues/domain/entity"
)

// AdminIssueSummary は管理画面のイシュー一覧の 1 行です。
type AdminIssueSummary struct {
	IssueID   uint      `json:"issueId"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminIssueDetail は管理画面のイシュー詳細です。削除済みのイシューも返します。
type AdminIssueDetail struct {
	IssueID   uint      `json:"issueId"`
	CoinID    uint      `json:"coinId"`
	ChartID   *uint     `json:"chartId"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	NewsTitle string    `json:"newsTitle"`
	Source    string    `json:"source"`
	Type      string    `json:"type"`
	CreatedBy string    `json:"createdBy"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicIssueDetail は公開 API で返すイシューの項目です。
type PublicIssueDetail struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	NewsTitle string `json:"newsTitle"`
	Source    string `json:"source"`
}

// CreateIssueResponse は作成されたイシューの ID です。
type CreateIssueResponse struct {
	IssueID uint `json:"issueId"`
}

// FromAdminSummary は一覧用のサマリーに変換します。
func FromAdminSummary(e entity.Issue) AdminIssueSummary {
	return AdminIssueSummary{
		IssueID:   e.ID,
		Date:      e.Date.Format(time.DateOnly),
		Title:     e.Title,
		CreatedBy: e.CreatedBy(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromAdminDetail は削除フラグを含む管理者向け詳細に変換します。
func FromAdminDetail(e *entity.Issue) AdminIssueDetail {
	return AdminIssueDetail{
		IssueID:   e.ID,
		CoinID:    e.CoinID,
		ChartID:   e.ChartID,
		Date:      e.Date.Format(time.DateOnly),
		Title:     e.Title,
		Content:   e.Content,
		NewsTitle: e.NewsTitle,
		Source:    e.Source,
		Type:      e.Type,
		CreatedBy: e.CreatedBy(),
		IsDeleted: e.IsDeleted,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromPublicDetail は公開用の項目のみに変換します。
func FromPublicDetail(e *entity.Issue) PublicIssueDetail {
	return PublicIssueDetail{
		Title:     e.Title,
		Content:   e.Content,
		NewsTitle: e.NewsTitle,
		Source:    e.Source,
	}
}
