package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/platform/http/response"

	"github.com/gin-gonic/gin"
)

// statusFor は usecase のエラーを HTTP ステータスに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrCoinNotFound),
		errors.Is(err, usecase.ErrNoChartData),
		errors.Is(err, usecase.ErrNoDisplayableCoins):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDisplayLimitExceeded):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrTickerUnavailable),
		errors.Is(err, usecase.ErrNewsUnavailable),
		errors.Is(err, usecase.ErrNewsDateParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	response.Error(c, statusFor(err), err)
}

// pathID はパスパラメータを正の整数として読み取ります。
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", name, c.Param(name)))
		return 0, false
	}
	return uint(v), true
}
