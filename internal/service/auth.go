package service

import (
	"errors"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 邮箱格式和密码长度在 transport 层 binding 校验，这里只管重复和落库。
// 返回安全字段，绝不带哈希。
func (s *AuthService) Register(email, password string) (*domain.PublicUser, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

type LoginResult struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Login 查无此人和密码不对返回同一个错误，避免账号枚举
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u.Public()}, nil
}
