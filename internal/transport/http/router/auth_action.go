package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/domain"
	"sweet-shop-api/internal/service"
	"sweet-shop-api/internal/transport/http/ez"
)

// ---------- 动作注册：/auth/register + /auth/login ----------

func mountAuthActions(api *gin.RouterGroup, svc *service.AuthService) {
	g := api.Group("/auth")

	type registerIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	ez.Register(g, ez.Action[registerIn, domain.PublicUser]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *registerIn) (domain.PublicUser, error) {
			u, err := svc.Register(in.Email, in.Password)
			if err != nil {
				return domain.PublicUser{}, err
			}
			return *u, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	ez.Register(g, ez.Action[loginIn, service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (service.LoginResult, error) {
			res, err := svc.Login(in.Email, in.Password)
			if err != nil {
				return service.LoginResult{}, err
			}
			return *res, nil
		},
	})
}
