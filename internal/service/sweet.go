package service

import (
	"context"
	"strings"
	"time"

	"sweet-shop-api/internal/core/cache"
	"sweet-shop-api/internal/domain"
)

const (
	catalogKey = "sweets:catalog"
	catalogTTL = 30 * time.Second
)

type SweetService struct {
	sweets domain.SweetRepository
	cache  *cache.Cache // 可选，nil 时直连存储
}

func NewSweetService(sweets domain.SweetRepository, c *cache.Cache) *SweetService {
	return &SweetService{sweets: sweets, cache: c}
}

func (s *SweetService) List(ctx context.Context) ([]domain.Sweet, error) {
	if s.cache == nil {
		return s.sweets.List()
	}
	return cache.GetOrLoadJSON(s.cache, ctx, catalogKey, catalogTTL,
		func(context.Context) ([]domain.Sweet, error) { return s.sweets.List() })
}

// Search 空查询直接返回空列表，不碰存储
func (s *SweetService) Search(q string) ([]domain.Sweet, error) {
	if strings.TrimSpace(q) == "" {
		return []domain.Sweet{}, nil
	}
	return s.sweets.Search(q)
}

func (s *SweetService) Create(ctx context.Context, sw *domain.Sweet) error {
	if err := validateSweet(sw.Name, sw.Category, sw.Price, sw.Quantity); err != nil {
		return err
	}
	if err := s.sweets.Create(sw); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update 部分更新。与 create 不同，只校验请求里出现的字段（缺席字段不动）。
func (s *SweetService) Update(ctx context.Context, id uint, patch domain.SweetPatch) (*domain.Sweet, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.Invalid("name must not be empty")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, domain.Invalid("category must not be empty")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, domain.Invalid("price must be positive")
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, domain.Invalid("quantity must not be negative")
	}
	sw, err := s.sweets.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) Delete(ctx context.Context, id uint) error {
	if err := s.sweets.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SweetService) Purchase(ctx context.Context, id uint) (*domain.Sweet, error) {
	sw, err := s.sweets.Purchase(id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) Restock(ctx context.Context, id uint, amount int64) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.Invalid("Invalid quantity")
	}
	sw, err := s.sweets.Restock(id, amount)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogKey)
	}
}

func validateSweet(name, category string, price float64, quantity int64) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("name must not be empty")
	}
	if strings.TrimSpace(category) == "" {
		return domain.Invalid("category must not be empty")
	}
	if price <= 0 {
		return domain.Invalid("price must be positive")
	}
	if quantity < 0 {
		return domain.Invalid("quantity must not be negative")
	}
	return nil
}
