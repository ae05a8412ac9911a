package entity

import "strings"

// KRWQuote is the quote currency prefix of the markets served by this catalog.
const KRWQuote = "KRW-"

// Market is one tradable market listed by the exchange.
type Market struct {
	Code        string
	KoreanName  string
	EnglishName string
}

// IsKRW reports whether the market is quoted in KRW.
func (m Market) IsKRW() bool {
	return strings.HasPrefix(m.Code, KRWQuote)
}
