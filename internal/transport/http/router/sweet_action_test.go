package router_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweet-shop-api/internal/domain"
)

func TestListSweetsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.seedSweet("Rainbow Whirl", "Lollipops", 2.5, 50)
	env.seedSweet("Dark Truffle", "Chocolate", 1.5, 30)

	rec := env.do(http.MethodGet, "/api/sweets", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	sweets := decode[[]domain.Sweet](t, rec)
	require.Len(t, sweets, 2)
	assert.Equal(t, "Rainbow Whirl", sweets[0].Name)
}

func TestSearchSweets(t *testing.T) {
	env := newTestEnv(t)
	env.seedSweet("Gummy Bears", "Gummies", 3.5, 10)
	env.seedSweet("Sour Crawlers", "Gummies", 3.99, 100)
	env.seedSweet("Dark Truffle", "Chocolate", 1.5, 30)

	// 空查询返回空列表，不是全量目录
	rec := env.do(http.MethodGet, "/api/sweets/search", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Sweet](t, rec))

	rec = env.do(http.MethodGet, "/api/sweets/search?q=Gummy", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]domain.Sweet](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Gummy Bears", got[0].Name)

	// 命中分类
	rec = env.do(http.MethodGet, "/api/sweets/search?q=Gummies", nil, "")
	assert.Len(t, decode[[]domain.Sweet](t, rec), 2)
}

func TestCreateSweet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()

	rec := env.do(http.MethodPost, "/api/sweets", map[string]any{
		"name": "Marshmallow Cloud", "category": "Soft", "price": 4.5, "quantity": 25, "image": "☁️",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	sw := decode[domain.Sweet](t, rec)
	assert.NotZero(t, sw.ID)
	assert.Equal(t, "Marshmallow Cloud", sw.Name)
	assert.Equal(t, int64(25), sw.Quantity)
}

func TestCreateSweetValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()

	cases := []map[string]any{
		{"name": "", "category": "Soft", "price": 1.0, "quantity": 1},
		{"name": "X", "category": "", "price": 1.0, "quantity": 1},
		{"name": "X", "category": "Soft", "price": 0, "quantity": 1},
		{"name": "X", "category": "Soft", "price": 1.0, "quantity": -1},
	}
	for i, payload := range cases {
		rec := env.do(http.MethodPost, "/api/sweets", payload, admin)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "case %d", i)
	}
}

// 所有 admin 路由对普通用户一律 403
func TestAdminRoutesForbiddenForUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.userToken()
	s := env.seedSweet("Berry Blast", "Hard Candy", 1.2, 200)

	calls := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/sweets", map[string]any{"name": "X", "category": "Y", "price": 1.0, "quantity": 1}},
		{http.MethodPut, fmt.Sprintf("/api/sweets/%d", s.ID), map[string]any{"price": 2.0}},
		{http.MethodDelete, fmt.Sprintf("/api/sweets/%d", s.ID), nil},
		{http.MethodPost, fmt.Sprintf("/api/sweets/%d/restock", s.ID), map[string]any{"quantity": 5}},
	}
	for _, call := range calls {
		rec := env.do(call.method, call.path, call.body, user)
		assert.Equalf(t, http.StatusForbidden, rec.Code, "%s %s", call.method, call.path)
		assert.Equal(t, "Admin access required", errOf(t, rec))
	}
}

func TestPurchaseRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedSweet("Caramel Chew", "Soft", 0.99, 10)

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", s.ID), nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", errOf(t, rec))
}

func TestPurchaseFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.userToken()
	s := env.seedSweet("Fizzy Cola Bottles", "Gummies", 2.99, 2)

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", s.ID), nil, user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[domain.Sweet](t, rec).Quantity)

	rec = env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", s.ID), nil, user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[domain.Sweet](t, rec).Quantity)

	rec = env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", s.ID), nil, user)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Out of stock", errOf(t, rec))
}

func TestPurchaseNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.userToken()

	rec := env.do(http.MethodPost, "/api/sweets/9999/purchase", nil, user)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Sweet not found", errOf(t, rec))
}

// 并发购买库存 1：恰好一个 200，其余 400 Out of stock
func TestPurchaseConcurrentOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user := env.userToken()
	s := env.seedSweet("Last One", "Chocolate", 2, 1)

	const n = 10
	var wg sync.WaitGroup
	codes := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", s.ID), nil, user)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	var ok, rejected int
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusBadRequest:
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, rejected)
}

func TestRestockFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()
	s := env.seedSweet("Gummy Bears", "Gummies", 3.5, 0)

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/restock", s.ID),
		map[string]any{"quantity": 5}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), decode[domain.Sweet](t, rec).Quantity)

	// 非正数补货量直接拒绝
	rec = env.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/restock", s.ID),
		map[string]any{"quantity": 0}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid quantity", errOf(t, rec))

	rec = env.do(http.MethodPost, "/api/sweets/9999/restock",
		map[string]any{"quantity": 5}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSweet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()
	s := env.seedSweet("Lemon Sherbet", "Hard Candy", 1.2, 150)

	rec := env.do(http.MethodPut, fmt.Sprintf("/api/sweets/%d", s.ID),
		map[string]any{"price": 1.5}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[domain.Sweet](t, rec)
	assert.Equal(t, 1.5, got.Price)
	assert.Equal(t, "Lemon Sherbet", got.Name)

	// 提供的字段照 create 规则校验
	rec = env.do(http.MethodPut, fmt.Sprintf("/api/sweets/%d", s.ID),
		map[string]any{"price": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/api/sweets/9999", map[string]any{"price": 1.0}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSweet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()
	s := env.seedSweet("Mega Jawbreaker", "Hard Candy", 5, 15)

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/sweets/%d", s.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sweet deleted", decode[map[string]string](t, rec)["message"])

	// 删除后任何按 id 的操作都是 404
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/sweets/%d", s.ID), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, fmt.Sprintf("/api/sweets/%d", s.ID),
		map[string]any{"price": 1.0}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadIDParam(t *testing.T) {
	env := newTestEnv(t)
	user := env.userToken()

	rec := env.do(http.MethodPost, "/api/sweets/abc/purchase", nil, user)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
