package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/core/auth"
	resp "sweet-shop-api/internal/transport/http/response"
)

// context keys，后续 handler 用 GetUserID / GetRole 取
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// Authenticate 校验 Bearer Token，把 {userId, role} 挂到请求上下文。
// 无 header 与校验失败分别返回固定文案的 401。
func Authenticate(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if ah == "" {
			resp.AbortErr(c, http.StatusUnauthorized, resp.MsgNoToken)
			return
		}
		tokenStr := strings.TrimPrefix(ah, "Bearer ")
		claims, err := j.Parse(tokenStr)
		if err != nil {
			resp.AbortErr(c, http.StatusUnauthorized, resp.MsgInvalidToken)
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin 必须挂在 Authenticate 之后，只放行 role == "admin"。
// 纯过滤器：除了短路响应没有任何副作用。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != "admin" {
			resp.AbortErr(c, http.StatusForbidden, resp.MsgAdminRequired)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(KeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func GetRole(c *gin.Context) string {
	if v, ok := c.Get(KeyRole); ok {
		if r, ok := v.(string); ok {
			return r
		}
	}
	return ""
}
