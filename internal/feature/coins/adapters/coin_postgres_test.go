package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/shared/pagination"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	require.NoError(t, db.AutoMigrate(&CoinSymbolModel{}, &CoinModel{}), "failed to migrate tables")
	require.NoError(t, db.Exec("CREATE TABLE charts (id integer primary key, coin_id integer)").Error)
	require.NoError(t, db.Exec("CREATE TABLE issues (id integer primary key, coin_id integer)").Error)
	return db
}

// seedCoins inserts one symbol and the given coins. Coins whose code ends with BTC get the symbol.
func seedCoins(t *testing.T, db *gorm.DB, coins ...CoinModel) CoinSymbolModel {
	t.Helper()

	sym := CoinSymbolModel{Code: "BTC", Color: "#F7931A", LogoURL: "https://static.upbit.com/logos/BTC.png"}
	require.NoError(t, db.Create(&sym).Error)
	for i := range coins {
		if coins[i].Code == "KRW-BTC" {
			coins[i].CoinSymbolID = &sym.ID
		}
		require.NoError(t, db.Create(&coins[i]).Error)
	}
	return sym
}

func TestNewCoinRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewCoinRepository(db)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
	assert.False(t, repo.inTx)
}

func TestCoinPostgres_FindByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db,
		CoinModel{KoreanName: "비트코인", EnglishName: "Bitcoin", Code: "KRW-BTC", IsDisplayed: true},
		CoinModel{KoreanName: "이더리움", EnglishName: "Ethereum", Code: "KRW-ETH"},
	)
	repo := NewCoinRepository(db)
	ctx := context.Background()

	btc, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "KRW-BTC", btc.Code)
	assert.Equal(t, "BTC", btc.DisplaySymbol())
	assert.True(t, btc.IsDisplayed)
	require.NotNil(t, btc.Symbol)
	assert.Equal(t, "#F7931A", btc.Symbol.Color)

	eth, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, eth.Symbol)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, usecase.ErrCoinNotFound)
}

func TestCoinPostgres_Finders(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db,
		CoinModel{KoreanName: "비트코인", EnglishName: "Bitcoin", Code: "KRW-BTC", IsDisplayed: true},
		CoinModel{KoreanName: "이더리움", EnglishName: "Ethereum", Code: "KRW-ETH"},
		CoinModel{KoreanName: "도지코인", EnglishName: "Dogecoin", Code: "KRW-DOGE", IsDisplayed: true},
	)
	repo := NewCoinRepository(db)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	displayed, err := repo.FindDisplayed(ctx)
	require.NoError(t, err)
	require.Len(t, displayed, 2)
	assert.Equal(t, "KRW-BTC", displayed[0].Code)
	assert.NotNil(t, displayed[0].Symbol)
	assert.Equal(t, "KRW-DOGE", displayed[1].Code)

	byCode, err := repo.FindByCodeIn(ctx, []string{"KRW-ETH", "KRW-NOPE"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, uint(2), byCode[0].ID)

	empty, err := repo.FindByCodeIn(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ids, err := repo.FindIDsByCode(ctx, []string{"KRW-BTC", "KRW-DOGE", "KRW-NOPE"})
	require.NoError(t, err)
	assert.Equal(t, map[string]uint{"KRW-BTC": 1, "KRW-DOGE": 3}, ids)

	n, err := repo.CountDisplayed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCoinPostgres_FindPageAndSearch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db,
		CoinModel{KoreanName: "비트코인", EnglishName: "Bitcoin", Code: "KRW-BTC"},
		CoinModel{KoreanName: "비트코인캐시", EnglishName: "Bitcoin Cash", Code: "KRW-BCH"},
		CoinModel{KoreanName: "이더리움", EnglishName: "Ethereum", Code: "KRW-ETH"},
		CoinModel{KoreanName: "도지코인", EnglishName: "Dogecoin", Code: "KRW-DOGE"},
	)
	repo := NewCoinRepository(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		pattern   string
		req       pagination.Request
		wantCodes []string
		wantTotal int64
	}{
		{
			name:      "first page ordered by id",
			req:       pagination.NewRequest(0, 2, pagination.Sort{Field: "id"}),
			wantCodes: []string{"KRW-BTC", "KRW-BCH"},
			wantTotal: 4,
		},
		{
			name:      "second page",
			req:       pagination.NewRequest(1, 3, pagination.Sort{Field: "id"}),
			wantCodes: []string{"KRW-DOGE"},
			wantTotal: 4,
		},
		{
			name:      "sorted by code descending",
			req:       pagination.NewRequest(0, 10, pagination.Sort{Field: "code", Desc: true}),
			wantCodes: []string{"KRW-ETH", "KRW-DOGE", "KRW-BTC", "KRW-BCH"},
			wantTotal: 4,
		},
		{
			name:      "keyword matches english name case-insensitively",
			pattern:   "%bitcoin%",
			req:       pagination.NewRequest(0, 10, pagination.Sort{Field: "id"}),
			wantCodes: []string{"KRW-BTC", "KRW-BCH"},
			wantTotal: 2,
		},
		{
			name:      "keyword matches code",
			pattern:   "%krw-eth%",
			req:       pagination.NewRequest(0, 10, pagination.Sort{Field: "id"}),
			wantCodes: []string{"KRW-ETH"},
			wantTotal: 1,
		},
		{
			name:      "keyword matches korean name",
			pattern:   "%도지%",
			req:       pagination.NewRequest(0, 10, pagination.Sort{Field: "id"}),
			wantCodes: []string{"KRW-DOGE"},
			wantTotal: 1,
		},
		{
			name:      "no match is empty",
			pattern:   "%zzz%",
			req:       pagination.NewRequest(0, 10, pagination.Sort{Field: "id"}),
			wantCodes: []string{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got pagination.Page[entity.Coin]
				err error
			)
			if tt.pattern == "" {
				got, err = repo.FindPage(ctx, tt.req)
			} else {
				got, err = repo.SearchByKeyword(ctx, tt.pattern, tt.req)
			}
			require.NoError(t, err)

			codes := make([]string, 0, len(got.Items))
			for _, c := range got.Items {
				codes = append(codes, c.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, tt.req.Page, got.Page)
			assert.Equal(t, tt.req.Size, got.Size)
		})
	}
}

func TestCoinPostgres_SaveAll_UpsertByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db, CoinModel{KoreanName: "old", EnglishName: "old", Code: "KRW-BTC", IsDisplayed: true})
	repo := NewCoinRepository(db)
	ctx := context.Background()

	err := repo.SaveAll(ctx, []entity.Coin{
		{KoreanName: "비트코인", EnglishName: "Bitcoin", Code: "KRW-BTC"},
		{KoreanName: "이더리움", EnglishName: "Ethereum", Code: "KRW-ETH"},
	})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "비트코인", all[0].KoreanName)
	assert.True(t, all[0].IsDisplayed, "display flag survives re-seed")
	assert.Equal(t, "KRW-ETH", all[1].Code)
	assert.False(t, all[1].IsDisplayed)

	require.NoError(t, repo.SaveAll(ctx, nil))
}

func TestCoinPostgres_Save(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db, CoinModel{KoreanName: "비트코인", EnglishName: "Bitcoin", Code: "KRW-BTC", IsDisplayed: true})
	repo := NewCoinRepository(db)
	ctx := context.Background()

	c, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	c.IsDisplayed = false
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.IsDisplayed)
	assert.NotNil(t, got.Symbol)
}

func TestCoinPostgres_DeleteWhereIDNotIn(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCoins(t, db,
		CoinModel{KoreanName: "a", EnglishName: "a", Code: "KRW-BTC"},
		CoinModel{KoreanName: "b", EnglishName: "b", Code: "KRW-ETH"},
		CoinModel{KoreanName: "c", EnglishName: "c", Code: "KRW-AAA"},
		CoinModel{KoreanName: "d", EnglishName: "d", Code: "KRW-BBB"},
	)
	require.NoError(t, db.Exec("INSERT INTO charts (coin_id) VALUES (3), (3), (1)").Error)
	require.NoError(t, db.Exec("INSERT INTO issues (coin_id) VALUES (4)").Error)
	repo := NewCoinRepository(db)
	ctx := context.Background()

	deleted, err := repo.DeleteWhereIDNotIn(ctx, []uint{1, 2})

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "coin with issues is kept")
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	var charts int64
	db.Table("charts").Count(&charts)
	assert.Equal(t, int64(1), charts)

	none, err := repo.DeleteWhereIDNotIn(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestCoinPostgres_Serializable(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		seedCoins(t, db, CoinModel{KoreanName: "a", EnglishName: "a", Code: "KRW-BTC"})
		repo := NewCoinRepository(db)
		ctx := context.Background()

		err := repo.Serializable(ctx, func(tx usecase.CoinRepository) error {
			c, err := tx.FindByID(ctx, 1)
			if err != nil {
				return err
			}
			c.IsDisplayed = true
			return tx.Save(ctx, c)
		})

		require.NoError(t, err)
		n, err := repo.CountDisplayed(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		seedCoins(t, db, CoinModel{KoreanName: "a", EnglishName: "a", Code: "KRW-BTC"})
		repo := NewCoinRepository(db)
		ctx := context.Background()
		errAbort := errors.New("abort")

		calls := 0
		err := repo.Serializable(ctx, func(tx usecase.CoinRepository) error {
			calls++
			c, err := tx.FindByID(ctx, 1)
			if err != nil {
				return err
			}
			c.IsDisplayed = true
			if err := tx.Save(ctx, c); err != nil {
				return err
			}
			return errAbort
		})

		assert.ErrorIs(t, err, errAbort)
		assert.Equal(t, 1, calls, "non-serialization errors are not retried")
		n, err := repo.CountDisplayed(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewCoinRepository(db)

		calls := 0
		err := repo.Serializable(context.Background(), func(tx usecase.CoinRepository) error {
			calls++
			if calls < maxSerializableAttempts {
				return fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40001"})
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, maxSerializableAttempts, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewCoinRepository(db)

		calls := 0
		err := repo.Serializable(context.Background(), func(tx usecase.CoinRepository) error {
			calls++
			return &pgconn.PgError{Code: "40001"}
		})

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, maxSerializableAttempts, calls)
	})
}

func TestCoinPostgres_Symbols(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCoinRepository(db)
	ctx := context.Background()

	saved, err := repo.SaveSymbols(ctx, []entity.CoinSymbol{
		{Code: "BTC", Color: "#F7931A"},
		{Code: "ETH", Color: "#627EEA"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotZero(t, saved[0].ID)
	assert.NotZero(t, saved[1].ID)

	all, err := repo.FindAllSymbols(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "BTC", all[0].Code)

	_, err = repo.SaveSymbols(ctx, []entity.CoinSymbol{{Code: "BTC"}})
	assert.Error(t, err, "symbol code is unique")
}
