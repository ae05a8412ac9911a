// Package entity defines the domain models for the coins feature.
package entity

// QuotePrefixLength is the length of the quote-currency prefix of an exchange code ("KRW-").
const QuotePrefixLength = 4

// Coin represents a tradable coin in the catalog.
type Coin struct {
	ID           uint
	KoreanName   string
	EnglishName  string
	Code         string // Exchange code, "<QUOTE>-<BASE>" (e.g. "KRW-BTC")
	CoinSymbolID *uint
	Symbol       *CoinSymbol // Looked up by CoinSymbolID; nil when unresolved
	IsDisplayed  bool
}

// DisplaySymbol returns the base-currency ticker derived from Code ("KRW-BTC" -> "BTC").
// Codes shorter than the prefix are returned unchanged.
func (c *Coin) DisplaySymbol() string {
	return DisplaySymbolOf(c.Code)
}

// DisplaySymbolOf strips the fixed quote-currency prefix from an exchange code.
func DisplaySymbolOf(code string) string {
	if len(code) <= QuotePrefixLength {
		return code
	}
	return code[QuotePrefixLength:]
}

// LogoURL returns the symbol's logo URL, or "" when no symbol is attached.
func (c *Coin) LogoURL() string {
	if c.Symbol == nil {
		return ""
	}
	return c.Symbol.LogoURL
}

// Color returns the symbol's display color, or "" when no symbol is attached.
func (c *Coin) Color() string {
	if c.Symbol == nil {
		return ""
	}
	return c.Symbol.Color
}

// CoinSymbol holds presentation metadata shared by coins of the same base currency.
type CoinSymbol struct {
	ID      uint
	Code    string // Base-currency ticker (e.g. "BTC"), unique
	Color   string
	LogoURL string
}
