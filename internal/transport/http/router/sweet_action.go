package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/internal/service"
	"sweet-shop-api/internal/transport/http/ez"
	mdw "sweet-shop-api/internal/transport/http/middleware"
	resp "sweet-shop-api/internal/transport/http/response"
)

// ---------- 动作注册：/sweets 全部路由 ----------
// 三个分组共用前缀，守卫按组叠加：public 裸跑，authed 带登录，admin 再加角色。

func mountSweetActions(api *gin.RouterGroup, svc *service.SweetService, jwter *auth.JWTer) {
	public := api.Group("/sweets")
	authed := api.Group("/sweets", mdw.Authenticate(jwter))
	admin := api.Group("/sweets", mdw.Authenticate(jwter), mdw.RequireAdmin())

	// --- 搜索（公开），必须先于任何 /:id 模式 ---
	type searchIn struct {
		Q string `form:"q"`
	}
	ez.Register(public, ez.Action[searchIn, []domain.Sweet]{
		Method: http.MethodGet,
		Path:   "/search",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *searchIn) ([]domain.Sweet, error) {
			return svc.Search(in.Q)
		},
	})

	// --- 列表（公开） ---
	ez.Register(public, ez.Action[struct{}, []domain.Sweet]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Sweet, error) {
			return svc.List(c.Request.Context())
		},
	})

	// --- 新建（admin） ---
	type createIn struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
		Quantity int64   `json:"quantity"`
		Image    string  `json:"image"`
	}
	ez.Register(admin, ez.Action[createIn, domain.Sweet]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createIn) (domain.Sweet, error) {
			sw := domain.Sweet{
				Name:     in.Name,
				Category: in.Category,
				Price:    in.Price,
				Quantity: in.Quantity,
				Image:    in.Image,
			}
			if err := svc.Create(c.Request.Context(), &sw); err != nil {
				return domain.Sweet{}, err
			}
			return sw, nil
		},
	})

	// --- 购买（登录即可） ---
	ez.Register(authed, ez.Action[struct{}, domain.Sweet]{
		Method: http.MethodPost,
		Path:   "/:id/purchase",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Sweet, error) {
			id, err := paramID(c)
			if err != nil {
				return domain.Sweet{}, err
			}
			sw, err := svc.Purchase(c.Request.Context(), id)
			if err != nil {
				return domain.Sweet{}, err
			}
			return *sw, nil
		},
	})

	// --- 补货（admin） ---
	type restockIn struct {
		Quantity int64 `json:"quantity"`
	}
	ez.Register(admin, ez.Action[restockIn, domain.Sweet]{
		Method: http.MethodPost,
		Path:   "/:id/restock",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *restockIn) (domain.Sweet, error) {
			id, err := paramID(c)
			if err != nil {
				return domain.Sweet{}, err
			}
			sw, err := svc.Restock(c.Request.Context(), id, in.Quantity)
			if err != nil {
				return domain.Sweet{}, err
			}
			return *sw, nil
		},
	})

	// --- 部分更新（admin） ---
	ez.Register(admin, ez.Action[domain.SweetPatch, domain.Sweet]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SweetPatch) (domain.Sweet, error) {
			id, err := paramID(c)
			if err != nil {
				return domain.Sweet{}, err
			}
			sw, err := svc.Update(c.Request.Context(), id, *in)
			if err != nil {
				return domain.Sweet{}, err
			}
			return *sw, nil
		},
	})

	// --- 删除（admin），硬删无回收站 ---
	ez.Register(admin, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := paramID(c)
			if err != nil {
				return nil, err
			}
			if err := svc.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"message": resp.MsgSweetDeleted}, nil
		},
	})
}

func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, domain.Invalid("Invalid id")
	}
	return uint(id), nil
}
