package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweet-shop-api/internal/core/auth"
	mdw "sweet-shop-api/internal/transport/http/middleware"
)

const testSecret = "test-secret-key-for-unit-tests"

// buildGuardedApp 最小化引擎：Authenticate + 可选 RequireAdmin + 透传 handler
func buildGuardedApp(adminOnly bool) (*gin.Engine, *auth.JWTer) {
	gin.SetMode(gin.TestMode)
	jwter := &auth.JWTer{Secret: []byte(testSecret), Issuer: "sweet-shop-test", TTL: time.Hour}

	r := gin.New()
	guards := []gin.HandlerFunc{mdw.Authenticate(jwter)}
	if adminOnly {
		guards = append(guards, mdw.RequireAdmin())
	}
	handlers := append(guards, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": mdw.GetUserID(c),
			"role":   mdw.GetRole(c),
		})
	})
	r.GET("/protected", handlers...)
	return r, jwter
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := buildGuardedApp(false)
	rec := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", errBody(t, rec))
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _ := buildGuardedApp(false)
	rec := doGet(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errBody(t, rec))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	r, jwter := buildGuardedApp(false)
	expired := &auth.JWTer{Secret: jwter.Secret, Issuer: jwter.Issuer, TTL: -time.Minute}
	token, err := expired.Issue(7, "user")
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errBody(t, rec))
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	r, jwter := buildGuardedApp(false)
	token, err := jwter.Issue(7, "user")
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UserID uint   `json:"userId"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(7), body.UserID)
	assert.Equal(t, "user", body.Role)
}

func TestRequireAdminForbidsUser(t *testing.T) {
	r, jwter := buildGuardedApp(true)
	token, err := jwter.Issue(7, "user")
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", errBody(t, rec))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r, jwter := buildGuardedApp(true)
	token, err := jwter.Issue(1, "admin")
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
