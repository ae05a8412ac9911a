package adapters

import "coin_backend/internal/feature/coins/domain/entity"

// CoinSymbolModel は coin_symbols テーブルの行です。
type CoinSymbolModel struct {
	ID      uint   `gorm:"primaryKey"`
	Code    string `gorm:"size:32;not null;uniqueIndex"`
	Color   string `gorm:"size:16"`
	LogoURL string `gorm:"size:255"`
}

func (CoinSymbolModel) TableName() string {
	return "coin_symbols"
}

// CoinModel は coins テーブルの行です。表示シンボルは code から導出するため保存しません。
type CoinModel struct {
	ID           uint   `gorm:"primaryKey"`
	KoreanName   string `gorm:"size:128;not null"`
	EnglishName  string `gorm:"size:128;not null"`
	Code         string `gorm:"size:32;not null;uniqueIndex"`
	CoinSymbolID *uint  `gorm:"index"`
	IsDisplayed  bool   `gorm:"not null;default:false;index"`
}

func (CoinModel) TableName() string {
	return "coins"
}

func toCoinModel(e entity.Coin) CoinModel {
	return CoinModel{
		ID:           e.ID,
		KoreanName:   e.KoreanName,
		EnglishName:  e.EnglishName,
		Code:         e.Code,
		CoinSymbolID: e.CoinSymbolID,
		IsDisplayed:  e.IsDisplayed,
	}
}

func toCoinEntity(m CoinModel, symbol *entity.CoinSymbol) entity.Coin {
	return entity.Coin{
		ID:           m.ID,
		KoreanName:   m.KoreanName,
		EnglishName:  m.EnglishName,
		Code:         m.Code,
		CoinSymbolID: m.CoinSymbolID,
		Symbol:       symbol,
		IsDisplayed:  m.IsDisplayed,
	}
}

func toSymbolModel(e entity.CoinSymbol) CoinSymbolModel {
	return CoinSymbolModel{ID: e.ID, Code: e.Code, Color: e.Color, LogoURL: e.LogoURL}
}

func toSymbolEntity(m CoinSymbolModel) entity.CoinSymbol {
	return entity.CoinSymbol{ID: m.ID, Code: m.Code, Color: m.Color, LogoURL: m.LogoURL}
}
