package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/service"
	mdw "sweet-shop-api/internal/transport/http/middleware"
)

// NewAPIEngine 组装中间件链和全部路由。
// 对外路径与老服务完全一致，客户端不需要改。
func NewAPIEngine(l *zap.Logger, authSvc *service.AuthService, sweetSvc *service.SweetService, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	mountAuthActions(api, authSvc)
	mountSweetActions(api, sweetSvc, jwter)

	return r
}
