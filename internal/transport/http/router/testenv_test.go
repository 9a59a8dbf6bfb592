package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/internal/repo"
	"sweet-shop-api/internal/service"
	"sweet-shop-api/internal/transport/http/router"
	"sweet-shop-api/pkg/utils"
)

type testEnv struct {
	t     *testing.T
	r     *gin.Engine
	db    *gorm.DB
	jwter *auth.JWTer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Sweet{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "sweet-shop-test", TTL: time.Hour}
	authSvc := service.NewAuthService(repo.NewUserRepo(db), jwter)
	sweetSvc := service.NewSweetService(repo.NewSweetRepo(db), nil)
	engine := router.NewAPIEngine(zap.NewNop(), authSvc, sweetSvc, jwter)

	return &testEnv{t: t, r: engine, db: db, jwter: jwter}
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.r.ServeHTTP(rec, req)
	return rec
}

// seedUser 直接落库 + 发 token，角色提升本来就是带外操作
func (e *testEnv) seedUser(email, role string) (domain.User, string) {
	e.t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(e.t, err)
	u := domain.User{Email: email, PasswordHash: hash, Role: role}
	require.NoError(e.t, e.db.Create(&u).Error)
	token, err := e.jwter.Issue(u.ID, u.Role)
	require.NoError(e.t, err)
	return u, token
}

func (e *testEnv) adminToken() string {
	_, token := e.seedUser("admin@shop.dev", "admin")
	return token
}

func (e *testEnv) userToken() string {
	_, token := e.seedUser("user@shop.dev", "user")
	return token
}

func (e *testEnv) seedSweet(name, category string, price float64, qty int64) domain.Sweet {
	e.t.Helper()
	s := domain.Sweet{Name: name, Category: category, Price: price, Quantity: qty}
	require.NoError(e.t, e.db.Create(&s).Error)
	return s
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}
