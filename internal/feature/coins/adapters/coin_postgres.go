package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/shared/pagination"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxSerializableAttempts は直列化失敗時にトランザクションを試行する最大回数です。
const maxSerializableAttempts = 3

type coinPostgres struct {
	db   *gorm.DB
	inTx bool // Serializable 内では読み取りに行ロックを付与する
}

var (
	_ usecase.CoinRepository   = (*coinPostgres)(nil)
	_ usecase.SymbolRepository = (*coinPostgres)(nil)
)

// NewCoinRepository は gorm を使った CoinRepository / SymbolRepository を返します。
func NewCoinRepository(db *gorm.DB) *coinPostgres {
	return &coinPostgres{db: db}
}

func (r *coinPostgres) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// attachSymbols は coin_symbol_id の IN 検索でシンボルを付与します。
func (r *coinPostgres) attachSymbols(ctx context.Context, rows []CoinModel) ([]entity.Coin, error) {
	ids := make([]uint, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, m := range rows {
		if m.CoinSymbolID == nil {
			continue
		}
		if _, ok := seen[*m.CoinSymbolID]; ok {
			continue
		}
		seen[*m.CoinSymbolID] = struct{}{}
		ids = append(ids, *m.CoinSymbolID)
	}

	symbols := make(map[uint]entity.CoinSymbol, len(ids))
	if len(ids) > 0 {
		var sms []CoinSymbolModel
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sms).Error; err != nil {
			return nil, fmt.Errorf("find coin symbols: %w", err)
		}
		for _, s := range sms {
			symbols[s.ID] = toSymbolEntity(s)
		}
	}

	out := make([]entity.Coin, 0, len(rows))
	for _, m := range rows {
		var sym *entity.CoinSymbol
		if m.CoinSymbolID != nil {
			if s, ok := symbols[*m.CoinSymbolID]; ok {
				sym = &s
			}
		}
		out = append(out, toCoinEntity(m, sym))
	}
	return out, nil
}

func (r *coinPostgres) FindByID(ctx context.Context, id uint) (*entity.Coin, error) {
	var m CoinModel
	if err := r.query(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCoinNotFound
		}
		return nil, fmt.Errorf("find coin: %w", err)
	}
	coins, err := r.attachSymbols(ctx, []CoinModel{m})
	if err != nil {
		return nil, err
	}
	return &coins[0], nil
}

func (r *coinPostgres) findWhere(ctx context.Context, query any, args ...any) ([]entity.Coin, error) {
	var rows []CoinModel
	q := r.query(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachSymbols(ctx, rows)
}

func (r *coinPostgres) FindAll(ctx context.Context) ([]entity.Coin, error) {
	return r.findWhere(ctx, nil)
}

func (r *coinPostgres) FindDisplayed(ctx context.Context) ([]entity.Coin, error) {
	return r.findWhere(ctx, "is_displayed = ?", true)
}

func (r *coinPostgres) FindByCodeIn(ctx context.Context, codes []string) ([]entity.Coin, error) {
	if len(codes) == 0 {
		return []entity.Coin{}, nil
	}
	return r.findWhere(ctx, "code IN ?", codes)
}

// FindIDsByCode はマーケットコードから ID への対応を返します。存在しないコードは含みません。
func (r *coinPostgres) FindIDsByCode(ctx context.Context, codes []string) (map[string]uint, error) {
	out := make(map[string]uint, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	var rows []CoinModel
	if err := r.db.WithContext(ctx).Select("id", "code").Where("code IN ?", codes).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.Code] = m.ID
	}
	return out, nil
}

func (r *coinPostgres) page(ctx context.Context, q *gorm.DB, req pagination.Request) (pagination.Page[entity.Coin], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&CoinModel{}).Count(&total).Error; err != nil {
		return pagination.Page[entity.Coin]{}, fmt.Errorf("count coins: %w", err)
	}

	field := req.Sort.Field
	if field == "" {
		field = "id"
	}
	var rows []CoinModel
	if err := q.Session(&gorm.Session{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: req.Sort.Desc}).
		Order("id ASC").
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&rows).Error; err != nil {
		return pagination.Page[entity.Coin]{}, fmt.Errorf("find coins: %w", err)
	}
	coins, err := r.attachSymbols(ctx, rows)
	if err != nil {
		return pagination.Page[entity.Coin]{}, err
	}
	return pagination.Page[entity.Coin]{Items: coins, Page: req.Page, Size: req.Size, Total: total}, nil
}

func (r *coinPostgres) FindPage(ctx context.Context, req pagination.Request) (pagination.Page[entity.Coin], error) {
	return r.page(ctx, r.db.WithContext(ctx).Model(&CoinModel{}), req)
}

func (r *coinPostgres) SearchByKeyword(ctx context.Context, pattern string, req pagination.Request) (pagination.Page[entity.Coin], error) {
	q := r.db.WithContext(ctx).Model(&CoinModel{}).
		Where("LOWER(korean_name) LIKE ? OR LOWER(english_name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern, pattern)
	return r.page(ctx, q, req)
}

func (r *coinPostgres) CountDisplayed(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CoinModel{}).Where("is_displayed = ?", true).Count(&n).Error
	return n, err
}

func (r *coinPostgres) Save(ctx context.Context, coin *entity.Coin) error {
	m := toCoinModel(*coin)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return fmt.Errorf("save coin: %w", err)
	}
	coin.ID = m.ID
	return nil
}

func (r *coinPostgres) SaveAll(ctx context.Context, coins []entity.Coin) error {
	if len(coins) == 0 {
		return nil
	}
	ms := make([]CoinModel, 0, len(coins))
	for _, c := range coins {
		m := toCoinModel(c)
		m.ID = 0
		ms = append(ms, m)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"korean_name", "english_name", "coin_symbol_id"}),
	}).CreateInBatches(&ms, 500).Error
}

// DeleteWhereIDNotIn は ids 以外のコインとそのチャートを削除します。
// イシューが付いたコインは削除しません。ids が空の場合は何もしません。
func (r *coinPostgres) DeleteWhereIDNotIn(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var victims []uint
		if err := tx.Model(&CoinModel{}).
			Where("id NOT IN ?", ids).
			Where("NOT EXISTS (SELECT 1 FROM issues WHERE issues.coin_id = coins.id)").
			Pluck("id", &victims).Error; err != nil {
			return err
		}
		if len(victims) == 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM charts WHERE coin_id IN ?", victims).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", victims).Delete(&CoinModel{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete coins: %w", err)
	}
	return deleted, nil
}

// Serializable は fn を SERIALIZABLE 分離レベルのトランザクションで実行し、
// 直列化失敗（SQLSTATE 40001）とデッドロック（40P01）の場合は最大 maxSerializableAttempts 回まで再試行します。
func (r *coinPostgres) Serializable(ctx context.Context, fn func(repo usecase.CoinRepository) error) error {
	var err error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&coinPostgres{db: tx, inTx: true})
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !isRetryable(err) {
			return err
		}
		slog.Warn("serializable transaction conflict, retrying", "attempt", attempt, "error", err)
	}
	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func (r *coinPostgres) FindAllSymbols(ctx context.Context) ([]entity.CoinSymbol, error) {
	var rows []CoinSymbolModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.CoinSymbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, toSymbolEntity(m))
	}
	return out, nil
}

func (r *coinPostgres) SaveSymbols(ctx context.Context, symbols []entity.CoinSymbol) ([]entity.CoinSymbol, error) {
	if len(symbols) == 0 {
		return []entity.CoinSymbol{}, nil
	}
	ms := make([]CoinSymbolModel, 0, len(symbols))
	for _, s := range symbols {
		ms = append(ms, toSymbolModel(s))
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return nil, fmt.Errorf("save coin symbols: %w", err)
	}
	out := make([]entity.CoinSymbol, 0, len(ms))
	for _, m := range ms {
		out = append(out, toSymbolEntity(m))
	}
	return out, nil
}
