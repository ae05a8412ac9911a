package dto

import (
	"fmt"
	"time"

	"coin_backend/internal/feature/issues/usecase"
)

// CreateIssueRequest はイシュー作成のリクエストボディです。
type CreateIssueRequest struct {
	Date      string `json:"date" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	NewsTitle string `json:"newsTitle"`
	Source    string `json:"source"`
}

// ToInput は日付を検証して usecase の入力に変換します。
func (r CreateIssueRequest) ToInput() (usecase.CreateIssueInput, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return usecase.CreateIssueInput{}, fmt.Errorf("invalid date: %q", r.Date)
	}
	return usecase.CreateIssueInput{
		Date:      date,
		Title:     r.Title,
		Content:   r.Content,
		NewsTitle: r.NewsTitle,
		Source:    r.Source,
	}, nil
}

// UpdateIssueRequest は部分更新のリクエストボディです。省略した項目は変更されません。
type UpdateIssueRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	NewsTitle *string `json:"newsTitle"`
	Source    *string `json:"source"`
}

func (r UpdateIssueRequest) ToInput() usecase.UpdateIssueInput {
	return usecase.UpdateIssueInput{
		Title:     r.Title,
		Content:   r.Content,
		NewsTitle: r.NewsTitle,
		Source:    r.Source,
	}
}
