package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/domain"
)

// Err 统一错误体 {"error": msg}，状态码走真实 HTTP 语义
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortErr 中间件短路用
func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// WriteError 业务错误 → 状态码映射，未识别的一律 500 且不外泄内部细节
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Err(c, http.StatusBadRequest, validationDetail(err))
	case errors.Is(err, domain.ErrEmailTaken):
		Err(c, http.StatusBadRequest, MsgUserExists)
	case errors.Is(err, domain.ErrInvalidCredentials):
		Err(c, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, domain.ErrOutOfStock):
		Err(c, http.StatusBadRequest, MsgOutOfStock)
	case errors.Is(err, domain.ErrNotFound):
		Err(c, http.StatusNotFound, MsgSweetNotFound)
	default:
		Err(c, http.StatusInternalServerError, MsgInternal)
	}
}

func validationDetail(err error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok {
		return detail
	}
	return msg
}
