package usecase

import (
	"fmt"

	"coin_backend/internal/feature/coins/domain/entity"
)

// DefaultSymbolCode は既知のシンボル一覧にないコインに割り当てるシンボルのコードです。
const DefaultSymbolCode = "DEFAULT"

const upbitLogoURL = "https://static.upbit.com/logos/%s.png"

// KnownSymbol はカタログ初期化時に作成するシンボルの定義です。
type KnownSymbol struct {
	Code  string
	Color string
}

// KnownSymbols はカタログ初期化時に作成するシンボル定義です。最後の要素が DEFAULT です。
var KnownSymbols = []KnownSymbol{
	{Code: "BTC", Color: "#F7931A"},
	{Code: "ETH", Color: "#627EEA"},
	{Code: "XRP", Color: "#23292F"},
	{Code: "DOGE", Color: "#C2A633"},
	{Code: "ADA", Color: "#0033AD"},
	{Code: "SOL", Color: "#9945FF"},
	{Code: "TRX", Color: "#EF0027"},
	{Code: "AVAX", Color: "#E84142"},
	{Code: "LINK", Color: "#2A5ADA"},
	{Code: "BCH", Color: "#8DC351"},
	{Code: "ETC", Color: "#328332"},
	{Code: "XLM", Color: "#14B6E7"},
	{Code: "SHIB", Color: "#FFA409"},
	{Code: "SUI", Color: "#4DA2FF"},
	{Code: "HBAR", Color: "#222222"},
	{Code: "NEAR", Color: "#00C08B"},
	{Code: "AAVE", Color: "#B6509E"},
	{Code: "POL", Color: "#8247E5"},
	{Code: "ATOM", Color: "#2E3148"},
	{Code: "APT", Color: "#06F7F7"},
	{Code: DefaultSymbolCode, Color: "#9E9E9E"},
}

// DefaultDisplayedMarkets はどのコインも公開されていない場合に初期公開するマーケットです（優先順）。
var DefaultDisplayedMarkets = []string{"KRW-BTC", "KRW-ETH", "KRW-XRP", "KRW-DOGE", "KRW-ADA", "KRW-SOL", "KRW-TRX"}

// ToCoinSymbol は定義から未採番のシンボルを生成します。
func (k KnownSymbol) ToCoinSymbol() entity.CoinSymbol {
	return entity.CoinSymbol{Code: k.Code, Color: k.Color, LogoURL: logoURL(k.Code)}
}

// SymbolCodeFor はマーケットコードに対応する既知シンボルのコードを返します。未知の場合は DefaultSymbolCode です。
func SymbolCodeFor(market string) string {
	base := entity.DisplaySymbolOf(market)
	for _, k := range KnownSymbols {
		if k.Code == base {
			return k.Code
		}
	}
	return DefaultSymbolCode
}

func logoURL(code string) string {
	if code == DefaultSymbolCode {
		return ""
	}
	return fmt.Sprintf(upbitLogoURL, code)
}
