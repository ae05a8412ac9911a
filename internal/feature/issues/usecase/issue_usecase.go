// Package usecase はイシューの作成・更新・論理削除と公開範囲のルールを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	chartusecase "coin_backend/internal/feature/charts/usecase"
	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/shared/pagination"
)

// CreateIssueInput は管理者によるイシュー作成の入力です。
type CreateIssueInput struct {
	Date      time.Time
	Title     string
	Content   string
	NewsTitle string
	Source    string
}

// UpdateIssueInput は部分更新の入力です。nil の項目は変更しません。
type UpdateIssueInput struct {
	Title     *string
	Content   *string
	NewsTitle *string
	Source    *string
}

// IssueUsecase はイシューのライフサイクルを管理します。
type IssueUsecase struct {
	issues IssueRepository
	coins  CoinReader
	charts ChartFinder
}

// NewIssueUsecase は新しい IssueUsecase を作成します。
func NewIssueUsecase(issues IssueRepository, coins CoinReader, charts ChartFinder) *IssueUsecase {
	return &IssueUsecase{issues: issues, coins: coins, charts: charts}
}

// ListForAdmin はコインの削除されていないイシューを作成日時の降順で返します。
func (u *IssueUsecase) ListForAdmin(ctx context.Context, coinID uint, page, size int) (pagination.Page[entity.Issue], error) {
	req := pagination.NewRequest(page, size, pagination.Sort{Field: "created_at", Desc: true})
	return u.issues.FindActivePageByCoinID(ctx, coinID, req)
}

// Create は管理者が作成したイシューを保存し、その ID を返します。
// 同じ日付のチャート行があれば関連付け、なければチャートなしで保存します。
func (u *IssueUsecase) Create(ctx context.Context, coinID uint, in CreateIssueInput, authorID string) (uint, error) {
	coin, err := u.coins.FindByID(ctx, coinID)
	if err != nil {
		return 0, err
	}

	var chartID *uint
	chart, err := u.charts.FindByDateAndCoinID(ctx, in.Date, coin.ID)
	switch {
	case err == nil:
		chartID = &chart.ID
	case errors.Is(err, chartusecase.ErrChartNotFound):
		slog.Debug("no chart for issue date", "coin_id", coin.ID, "date", in.Date.Format(time.DateOnly))
	default:
		return 0, fmt.Errorf("find chart: %w", err)
	}

	userID, err := strconv.ParseInt(authorID, 10, 64)
	if err != nil {
		slog.Warn("author id is not numeric", "author_id", authorID)
		return 0, fmt.Errorf("%w: %q", ErrInvalidAuthorID, authorID)
	}

	issue := &entity.Issue{
		CoinID:       coin.ID,
		ChartID:      chartID,
		Chart:        chart,
		Date:         in.Date,
		Title:        in.Title,
		Content:      in.Content,
		NewsTitle:    in.NewsTitle,
		Source:       in.Source,
		Type:         entity.TypeManual,
		UserID:       &userID,
		RequestCount: 0,
		IsDeleted:    false,
	}
	if err := u.issues.Save(ctx, issue); err != nil {
		return 0, fmt.Errorf("save issue: %w", err)
	}
	slog.Info("issue created", "issue_id", issue.ID, "coin_id", coin.ID, "author_id", userID)
	return issue.ID, nil
}

// GetDetailForAdmin は削除済みを含めてイシューを返します。
func (u *IssueUsecase) GetDetailForAdmin(ctx context.Context, issueID uint) (*entity.Issue, error) {
	return u.issues.FindByID(ctx, issueID)
}

// Update は nil でない項目のみを更新します。削除済みのイシューも更新できます。
func (u *IssueUsecase) Update(ctx context.Context, issueID uint, in UpdateIssueInput) error {
	issue, err := u.issues.FindByID(ctx, issueID)
	if err != nil {
		return err
	}
	issue.Update(in.Title, in.Content, in.NewsTitle, in.Source)
	if err := u.issues.Save(ctx, issue); err != nil {
		return fmt.Errorf("save issue: %w", err)
	}
	slog.Info("issue updated", "issue_id", issueID)
	return nil
}

// BulkSoftDelete は見つかったイシューを削除済みにします。存在しない ID は警告を記録して無視します。
func (u *IssueUsecase) BulkSoftDelete(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	issues, err := u.issues.FindAllByID(ctx, ids)
	if err != nil {
		return fmt.Errorf("find issues: %w", err)
	}
	if len(issues) != len(ids) {
		slog.Warn("some issue ids were not found", "requested", ids, "found", len(issues))
	}
	for i := range issues {
		issues[i].Delete()
	}
	if err := u.issues.SaveAll(ctx, issues); err != nil {
		return fmt.Errorf("save issues: %w", err)
	}
	slog.Info("issues soft-deleted", "ids", ids)
	return nil
}

// GetPublicDetail は公開向けにイシューを返します。削除済みのものは存在しないものとして扱います。
func (u *IssueUsecase) GetPublicDetail(ctx context.Context, coinID, issueID uint) (*entity.Issue, error) {
	issue, err := u.issues.FindByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if !issue.IsActive() {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}
