package dto

import "coin_backend/internal/feature/coins/domain/entity"

// AdminCoinListItem は管理者向けコイン一覧の1要素です。ティッカー情報は含みません。
type AdminCoinListItem struct {
	CryptoID    uint   `json:"cryptoId"`
	KoreanName  string `json:"koreanName"`
	EnglishName string `json:"englishName"`
	Symbol      string `json:"symbol"`
	LogoURL     string `json:"logoUrl"`
	IsDisplayed bool   `json:"isDisplayed"`
}

// AdminCoinDetail は管理者向けコイン詳細です。
type AdminCoinDetail struct {
	CryptoID    uint   `json:"cryptoId"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	LogoURL     string `json:"logoUrl"`
	CryptoColor string `json:"cryptoColor"`
	IsDisplayed bool   `json:"isDisplayed"`
}

// FromAdminListItem は Coin を一覧要素に変換します。
func FromAdminListItem(c entity.Coin) AdminCoinListItem {
	return AdminCoinListItem{
		CryptoID:    c.ID,
		KoreanName:  c.KoreanName,
		EnglishName: c.EnglishName,
		Symbol:      c.DisplaySymbol(),
		LogoURL:     c.LogoURL(),
		IsDisplayed: c.IsDisplayed,
	}
}

// FromAdminDetail は Coin を詳細に変換します。
func FromAdminDetail(c *entity.Coin) AdminCoinDetail {
	return AdminCoinDetail{
		CryptoID:    c.ID,
		Name:        c.KoreanName,
		Symbol:      c.DisplaySymbol(),
		LogoURL:     c.LogoURL(),
		CryptoColor: c.Color(),
		IsDisplayed: c.IsDisplayed,
	}
}
