package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/feature/charts/usecase"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chartPostgres struct {
	db *gorm.DB
}

var _ usecase.ChartRepository = (*chartPostgres)(nil)

// NewChartRepository は gorm を使った ChartRepository を返します。
func NewChartRepository(db *gorm.DB) *chartPostgres {
	return &chartPostgres{db: db}
}

// ChartModel は charts テーブルの行です。
type ChartModel struct {
	ID     uint      `gorm:"primaryKey"`
	CoinID uint      `gorm:"not null;uniqueIndex:chart_coin_date,priority:1"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:chart_coin_date,priority:2"`

	OpeningPrice decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	HighPrice    decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	LowPrice     decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	TradePrice   decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	ChangeRate   decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	ChangePrice  decimal.Decimal `gorm:"type:numeric(30,8);not null"`
}

func (ChartModel) TableName() string {
	return "charts"
}

// ToModel converts a chart entity to its table row.
func ToModel(e entity.Chart) ChartModel {
	return ChartModel{
		ID:           e.ID,
		CoinID:       e.CoinID,
		Date:         entity.TruncateDate(e.Date),
		OpeningPrice: e.OpeningPrice,
		HighPrice:    e.HighPrice,
		LowPrice:     e.LowPrice,
		TradePrice:   e.TradePrice,
		ChangeRate:   e.ChangeRate,
		ChangePrice:  e.ChangePrice,
	}
}

// ToEntity converts a table row to a chart entity.
func ToEntity(m ChartModel) entity.Chart {
	return entity.Chart{
		ID:           m.ID,
		CoinID:       m.CoinID,
		Date:         entity.TruncateDate(m.Date),
		OpeningPrice: m.OpeningPrice,
		HighPrice:    m.HighPrice,
		LowPrice:     m.LowPrice,
		TradePrice:   m.TradePrice,
		ChangeRate:   m.ChangeRate,
		ChangePrice:  m.ChangePrice,
	}
}

func (r *chartPostgres) UpsertBatch(ctx context.Context, charts []entity.Chart) error {
	if len(charts) == 0 {
		return nil
	}
	ms := make([]ChartModel, 0, len(charts))
	for _, e := range charts {
		m := ToModel(e)
		m.ID = 0
		ms = append(ms, m)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coin_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"opening_price", "high_price", "low_price", "trade_price", "change_rate", "change_price",
		}),
	}).CreateInBatches(&ms, 500).Error
}

func (r *chartPostgres) FindAllByCoinID(ctx context.Context, coinID uint) ([]entity.Chart, error) {
	var rows []ChartModel
	if err := r.db.WithContext(ctx).
		Where("coin_id = ?", coinID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Chart, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToEntity(m))
	}
	return out, nil
}

func (r *chartPostgres) FindByDateAndCoinID(ctx context.Context, date time.Time, coinID uint) (*entity.Chart, error) {
	var m ChartModel
	err := r.db.WithContext(ctx).
		Where("coin_id = ? AND date = ?", coinID, entity.TruncateDate(date)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrChartNotFound
		}
		return nil, fmt.Errorf("find chart: %w", err)
	}
	c := ToEntity(m)
	return &c, nil
}
