package usecase

import (
	"errors"

	coinusecase "coin_backend/internal/feature/coins/usecase"
)

var (
	// ErrIssueNotFound はイシューが存在しない場合（公開参照では削除済みの場合も）に返されます。
	ErrIssueNotFound = errors.New("issue not found")
	// ErrInvalidAuthorID は作成者IDを10進の整数として解釈できない場合に返されます。
	ErrInvalidAuthorID = errors.New("invalid author id")
	// ErrCoinNotFound はコインカタログと同じセンチネルです。
	ErrCoinNotFound = coinusecase.ErrCoinNotFound
)
