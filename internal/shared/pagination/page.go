// Package pagination はページング検索の共通型を提供します。
package pagination

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultSize はページサイズ未指定時の件数です。
const DefaultSize = 10

// MaxSize は1ページで返す最大件数です。
const MaxSize = 100

// Sort は並び替え条件を表します。Field は検証済みのカラム名です。
type Sort struct {
	Field string
	Desc  bool
}

// Request はゼロ始まりのページ番号とページサイズ、並び替え条件を保持します。
type Request struct {
	Page int
	Size int
	Sort Sort
}

var (
	ErrInvalidPage = errors.New("page must be a non-negative integer")
	ErrInvalidSize = fmt.Errorf("size must be an integer between 1 and %d", MaxSize)
)

// ParseParams は page と size のクエリ文字列を検証します。
// 空文字列はそれぞれ 0 と DefaultSize として扱い、それ以外の不正な値はエラーにします。
func ParseParams(pageStr, sizeStr string) (page, size int, err error) {
	page, size = 0, DefaultSize
	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPage, pageStr)
		}
	}
	if sizeStr != "" {
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > MaxSize {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, sizeStr)
		}
	}
	return page, size, nil
}

// NewRequest は範囲外の値を補正した Request を生成します。
// page が負の場合は 0、size が 1 未満の場合は DefaultSize、MaxSize 超過の場合は MaxSize を使用します。
func NewRequest(page, size int, sort Sort) Request {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = DefaultSize
	case size > MaxSize:
		size = MaxSize
	}
	return Request{Page: page, Size: size, Sort: sort}
}

// Offset は SQL の OFFSET 値を返します。
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Page はページング検索の結果です。
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

// TotalPages は総ページ数を返します。
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// Map は要素を変換した新しい Page を返します。
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{Items: items, Page: p.Page, Size: p.Size, Total: p.Total}
}
