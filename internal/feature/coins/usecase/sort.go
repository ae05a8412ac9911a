package usecase

import (
	"strings"

	"coin_backend/internal/shared/pagination"
)

// DefaultSort は ParseSort が解釈できない入力に対して返す既定のソートです（ID 昇順）。
var DefaultSort = pagination.Sort{Field: "id", Desc: false}

// sortColumns は受け付けるソート項目と対応するカラム名です。
var sortColumns = map[string]string{
	"id":           "id",
	"koreanname":   "korean_name",
	"korean_name":  "korean_name",
	"englishname":  "english_name",
	"english_name": "english_name",
	"code":         "code",
	"isdisplayed":  "is_displayed",
	"is_displayed": "is_displayed",
}

// ParseSort は "<field>[,asc|desc]" 形式のソート指定を解釈します。
// 空・未知の項目・不正な形式はすべて DefaultSort になり、エラーは返しません。
// 方向は "desc"（大文字小文字を区別しない）のときのみ降順です。
func ParseSort(s string) pagination.Sort {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort
	}
	parts := strings.Split(s, ",")
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return DefaultSort
	}
	column, ok := sortColumns[strings.ToLower(field)]
	if !ok {
		return DefaultSort
	}
	desc := len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
	return pagination.Sort{Field: column, Desc: desc}
}
