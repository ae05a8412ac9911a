package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"coin_backend/internal/feature/issues/usecase"
	"coin_backend/internal/platform/http/response"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrIssueNotFound),
		errors.Is(err, usecase.ErrCoinNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidAuthorID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	response.Error(c, statusFor(err), err)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", name, c.Param(name)))
		return 0, false
	}
	return uint(v), true
}
