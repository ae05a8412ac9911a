package usecase

import "errors"

// ErrChartNotFound は指定されたコインと日付のチャート行が存在しない場合に返されます。
var ErrChartNotFound = errors.New("chart not found")
