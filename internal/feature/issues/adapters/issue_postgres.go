package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	chartadapters "coin_backend/internal/feature/charts/adapters"
	chartentity "coin_backend/internal/feature/charts/domain/entity"
	coinusecase "coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/feature/issues/usecase"
	"coin_backend/internal/shared/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssueModel は issues テーブルの行です。
type IssueModel struct {
	ID           uint      `gorm:"primaryKey"`
	CoinID       uint      `gorm:"not null;index:issue_coin_deleted,priority:1"`
	ChartID      *uint     `gorm:"index"`
	Date         time.Time `gorm:"type:date;not null"`
	Title        string    `gorm:"size:255;not null"`
	Content      string    `gorm:"type:text"`
	NewsTitle    string    `gorm:"size:255"`
	Source       string    `gorm:"size:512"`
	Type         string    `gorm:"size:20;not null"`
	UserID       *int64
	RequestCount int64     `gorm:"not null;default:0"`
	IsDeleted    bool      `gorm:"not null;default:false;index:issue_coin_deleted,priority:2"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (IssueModel) TableName() string {
	return "issues"
}

type issuePostgres struct {
	db *gorm.DB
}

var (
	_ usecase.IssueRepository = (*issuePostgres)(nil)
	_ coinusecase.IssueReader = (*issuePostgres)(nil)
)

// NewIssueRepository は gorm を使った IssueRepository を返します。
func NewIssueRepository(db *gorm.DB) *issuePostgres {
	return &issuePostgres{db: db}
}

func toModel(e *entity.Issue) IssueModel {
	return IssueModel{
		ID:           e.ID,
		CoinID:       e.CoinID,
		ChartID:      e.ChartID,
		Date:         chartentity.TruncateDate(e.Date),
		Title:        e.Title,
		Content:      e.Content,
		NewsTitle:    e.NewsTitle,
		Source:       e.Source,
		Type:         e.Type,
		UserID:       e.UserID,
		RequestCount: e.RequestCount,
		IsDeleted:    e.IsDeleted,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEntity(m IssueModel) entity.Issue {
	return entity.Issue{
		ID:           m.ID,
		CoinID:       m.CoinID,
		ChartID:      m.ChartID,
		Date:         chartentity.TruncateDate(m.Date),
		Title:        m.Title,
		Content:      m.Content,
		NewsTitle:    m.NewsTitle,
		Source:       m.Source,
		Type:         m.Type,
		UserID:       m.UserID,
		RequestCount: m.RequestCount,
		IsDeleted:    m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// withCharts は chart_id を持つ行のチャートをまとめて読み込みます。
func (r *issuePostgres) withCharts(ctx context.Context, rows []IssueModel) ([]entity.Issue, error) {
	var chartIDs []uint
	for _, m := range rows {
		if m.ChartID != nil {
			chartIDs = append(chartIDs, *m.ChartID)
		}
	}

	charts := map[uint]chartentity.Chart{}
	if len(chartIDs) > 0 {
		var cms []chartadapters.ChartModel
		if err := r.db.WithContext(ctx).Where("id IN ?", chartIDs).Find(&cms).Error; err != nil {
			return nil, fmt.Errorf("load charts: %w", err)
		}
		for _, cm := range cms {
			charts[cm.ID] = chartadapters.ToEntity(cm)
		}
	}

	out := make([]entity.Issue, 0, len(rows))
	for _, m := range rows {
		is := toEntity(m)
		if m.ChartID != nil {
			if c, ok := charts[*m.ChartID]; ok {
				is.Chart = &c
			}
		}
		out = append(out, is)
	}
	return out, nil
}

func (r *issuePostgres) FindByID(ctx context.Context, id uint) (*entity.Issue, error) {
	var m IssueModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	issues, err := r.withCharts(ctx, []IssueModel{m})
	if err != nil {
		return nil, err
	}
	return &issues[0], nil
}

func (r *issuePostgres) FindAllByID(ctx context.Context, ids []uint) ([]entity.Issue, error) {
	if len(ids) == 0 {
		return []entity.Issue{}, nil
	}
	var rows []IssueModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find issues: %w", err)
	}
	return r.withCharts(ctx, rows)
}

// FindActiveByCoinID は詳細画面のマーカー用に削除されていないイシューを日付順で返します。
func (r *issuePostgres) FindActiveByCoinID(ctx context.Context, coinID uint) ([]entity.Issue, error) {
	var rows []IssueModel
	if err := r.db.WithContext(ctx).
		Where("coin_id = ? AND is_deleted = ?", coinID, false).
		Order("date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find active issues: %w", err)
	}
	return r.withCharts(ctx, rows)
}

func (r *issuePostgres) FindActivePageByCoinID(ctx context.Context, coinID uint, req pagination.Request) (pagination.Page[entity.Issue], error) {
	q := r.db.WithContext(ctx).Model(&IssueModel{}).Where("coin_id = ? AND is_deleted = ?", coinID, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return pagination.Page[entity.Issue]{}, fmt.Errorf("count issues: %w", err)
	}

	var rows []IssueModel
	if err := q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: req.Sort.Field}, Desc: req.Sort.Desc}).
		Order("id DESC").
		Limit(req.Size).Offset(req.Offset()).
		Find(&rows).Error; err != nil {
		return pagination.Page[entity.Issue]{}, fmt.Errorf("find issue page: %w", err)
	}

	items, err := r.withCharts(ctx, rows)
	if err != nil {
		return pagination.Page[entity.Issue]{}, err
	}
	return pagination.Page[entity.Issue]{Items: items, Page: req.Page, Size: req.Size, Total: total}, nil
}

func (r *issuePostgres) Save(ctx context.Context, issue *entity.Issue) error {
	m := toModel(issue)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return fmt.Errorf("save issue: %w", err)
	}
	issue.ID = m.ID
	issue.CreatedAt = m.CreatedAt
	issue.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *issuePostgres) SaveAll(ctx context.Context, issues []entity.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &issuePostgres{db: tx}
		for i := range issues {
			if err := txRepo.Save(ctx, &issues[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
