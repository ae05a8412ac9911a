package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/usecase"
	issueentity "coin_backend/internal/feature/issues/domain/entity"
	"coin_backend/internal/shared/pagination"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockCoinRepository は CoinRepository のモック実装です。
type mockCoinRepository struct {
	FindByIDFunc           func(ctx context.Context, id uint) (*entity.Coin, error)
	FindAllFunc            func(ctx context.Context) ([]entity.Coin, error)
	FindDisplayedFunc      func(ctx context.Context) ([]entity.Coin, error)
	FindByCodeInFunc       func(ctx context.Context, codes []string) ([]entity.Coin, error)
	FindPageFunc           func(ctx context.Context, req pagination.Request) (pagination.Page[entity.Coin], error)
	SearchByKeywordFunc    func(ctx context.Context, pattern string, req pagination.Request) (pagination.Page[entity.Coin], error)
	CountDisplayedFunc     func(ctx context.Context) (int64, error)
	SaveFunc               func(ctx context.Context, coin *entity.Coin) error
	SaveAllFunc            func(ctx context.Context, coins []entity.Coin) error
	DeleteWhereIDNotInFunc func(ctx context.Context, ids []uint) (int64, error)
	SerializableCalls      int
}

var _ usecase.CoinRepository = (*mockCoinRepository)(nil)

func (m *mockCoinRepository) FindByID(ctx context.Context, id uint) (*entity.Coin, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc is not implemented")
}

func (m *mockCoinRepository) FindAll(ctx context.Context) ([]entity.Coin, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, errors.New("FindAllFunc is not implemented")
}

func (m *mockCoinRepository) FindDisplayed(ctx context.Context) ([]entity.Coin, error) {
	if m.FindDisplayedFunc != nil {
		return m.FindDisplayedFunc(ctx)
	}
	return nil, errors.New("FindDisplayedFunc is not implemented")
}

func (m *mockCoinRepository) FindByCodeIn(ctx context.Context, codes []string) ([]entity.Coin, error) {
	if m.FindByCodeInFunc != nil {
		return m.FindByCodeInFunc(ctx, codes)
	}
	return nil, errors.New("FindByCodeInFunc is not implemented")
}

func (m *mockCoinRepository) FindPage(ctx context.Context, req pagination.Request) (pagination.Page[entity.Coin], error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, req)
	}
	return pagination.Page[entity.Coin]{}, errors.New("FindPageFunc is not implemented")
}

func (m *mockCoinRepository) SearchByKeyword(ctx context.Context, pattern string, req pagination.Request) (pagination.Page[entity.Coin], error) {
	if m.SearchByKeywordFunc != nil {
		return m.SearchByKeywordFunc(ctx, pattern, req)
	}
	return pagination.Page[entity.Coin]{}, errors.New("SearchByKeywordFunc is not implemented")
}

func (m *mockCoinRepository) CountDisplayed(ctx context.Context) (int64, error) {
	if m.CountDisplayedFunc != nil {
		return m.CountDisplayedFunc(ctx)
	}
	return 0, errors.New("CountDisplayedFunc is not implemented")
}

func (m *mockCoinRepository) Save(ctx context.Context, coin *entity.Coin) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, coin)
	}
	return errors.New("SaveFunc is not implemented")
}

func (m *mockCoinRepository) SaveAll(ctx context.Context, coins []entity.Coin) error {
	if m.SaveAllFunc != nil {
		return m.SaveAllFunc(ctx, coins)
	}
	return errors.New("SaveAllFunc is not implemented")
}

func (m *mockCoinRepository) DeleteWhereIDNotIn(ctx context.Context, ids []uint) (int64, error) {
	if m.DeleteWhereIDNotInFunc != nil {
		return m.DeleteWhereIDNotInFunc(ctx, ids)
	}
	return 0, errors.New("DeleteWhereIDNotInFunc is not implemented")
}

// Serializable はトランザクションを模さずに fn を自身で実行します。
func (m *mockCoinRepository) Serializable(ctx context.Context, fn func(repo usecase.CoinRepository) error) error {
	m.SerializableCalls++
	return fn(m)
}

// memCoinRepository は mutex で直列化するインメモリの CoinRepository です。並行性の検証に使います。
type memCoinRepository struct {
	mockCoinRepository
	mu    sync.Mutex
	coins map[uint]entity.Coin
}

func newMemCoinRepository(coins ...entity.Coin) *memCoinRepository {
	r := &memCoinRepository{coins: make(map[uint]entity.Coin, len(coins))}
	for _, c := range coins {
		r.coins[c.ID] = c
	}
	return r
}

// txView は Serializable 内で渡される、ロック取得済みのビューです。
type txView struct {
	mockCoinRepository
	r *memCoinRepository
}

func (r *memCoinRepository) Serializable(ctx context.Context, fn func(repo usecase.CoinRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&txView{r: r})
}

func (v *txView) FindByID(ctx context.Context, id uint) (*entity.Coin, error) {
	c, ok := v.r.coins[id]
	if !ok {
		return nil, usecase.ErrCoinNotFound
	}
	return &c, nil
}

func (v *txView) CountDisplayed(ctx context.Context) (int64, error) {
	var n int64
	for _, c := range v.r.coins {
		if c.IsDisplayed {
			n++
		}
	}
	return n, nil
}

func (v *txView) Save(ctx context.Context, coin *entity.Coin) error {
	v.r.coins[coin.ID] = *coin
	return nil
}

func (r *memCoinRepository) displayedIDs() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for id, c := range r.coins {
		if c.IsDisplayed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type mockChartReader struct {
	FindAllByCoinIDFunc func(ctx context.Context, coinID uint) ([]chartentity.Chart, error)
}

func (m *mockChartReader) FindAllByCoinID(ctx context.Context, coinID uint) ([]chartentity.Chart, error) {
	return m.FindAllByCoinIDFunc(ctx, coinID)
}

type mockIssueReader struct {
	FindActiveByCoinIDFunc func(ctx context.Context, coinID uint) ([]issueentity.Issue, error)
}

func (m *mockIssueReader) FindActiveByCoinID(ctx context.Context, coinID uint) ([]issueentity.Issue, error) {
	return m.FindActiveByCoinIDFunc(ctx, coinID)
}

type mockTickerClient struct {
	GetTickersFunc  func(ctx context.Context, codes ...string) ([]entity.Ticker, error)
	GetTickersCalls [][]string
}

func (m *mockTickerClient) GetTickers(ctx context.Context, codes ...string) ([]entity.Ticker, error) {
	m.GetTickersCalls = append(m.GetTickersCalls, codes)
	return m.GetTickersFunc(ctx, codes...)
}

type mockNewsClient struct {
	SearchFunc func(ctx context.Context, term string) ([]entity.NewsSearchResult, error)
}

func (m *mockNewsClient) Search(ctx context.Context, term string) ([]entity.NewsSearchResult, error) {
	return m.SearchFunc(ctx, term)
}

type mockMarketClient struct {
	GetMarketsFunc func(ctx context.Context) ([]entity.Market, error)
}

func (m *mockMarketClient) GetMarkets(ctx context.Context) ([]entity.Market, error) {
	return m.GetMarketsFunc(ctx)
}

type mockSymbolRepository struct {
	FindAllSymbolsFunc func(ctx context.Context) ([]entity.CoinSymbol, error)
	SaveSymbolsFunc    func(ctx context.Context, symbols []entity.CoinSymbol) ([]entity.CoinSymbol, error)
}

func (m *mockSymbolRepository) FindAllSymbols(ctx context.Context) ([]entity.CoinSymbol, error) {
	return m.FindAllSymbolsFunc(ctx)
}

func (m *mockSymbolRepository) SaveSymbols(ctx context.Context, symbols []entity.CoinSymbol) ([]entity.CoinSymbol, error) {
	return m.SaveSymbolsFunc(ctx, symbols)
}
