package domain

import (
	"errors"
	"fmt"
)

// 业务错误哨兵，transport 层用 errors.Is 映射成 HTTP 状态码
var (
	ErrNotFound           = errors.New("sweet not found")
	ErrOutOfStock         = errors.New("out of stock")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// Invalid 构造带说明的校验错误（errors.Is(err, ErrValidation) 仍成立）
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
