package usecase

import "errors"

var (
	// ErrCoinNotFound は指定IDのコインが存在しない場合に返されます。
	ErrCoinNotFound = errors.New("coin not found")
	// ErrNoDisplayableCoins は公開対象のコインが1件もない場合に返されます。
	ErrNoDisplayableCoins = errors.New("no displayable coins")
	// ErrNoChartData はコインにチャートデータが1件もない場合に返されます。
	ErrNoChartData = errors.New("no chart data")
	// ErrDisplayLimitExceeded は公開コイン数が上限に達している場合に返されます。
	ErrDisplayLimitExceeded = errors.New("display limit exceeded")
	// ErrNewsDateParse はニュースの公開日時を解析できない場合に返されます。
	ErrNewsDateParse = errors.New("news publish date parse error")
	// ErrNewsUnavailable はニュース検索 API の呼び出しに失敗した場合に返されます。
	ErrNewsUnavailable = errors.New("news unavailable")
	// ErrTickerUnavailable は取引所の呼び出しに失敗した場合、または応答に必要なティッカーが含まれない場合に返されます。
	ErrTickerUnavailable = errors.New("ticker unavailable")
)
