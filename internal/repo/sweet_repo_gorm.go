package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"sweet-shop-api/internal/domain"
)

type SweetRepo struct{ db *gorm.DB }

func NewSweetRepo(db *gorm.DB) *SweetRepo { return &SweetRepo{db: db} }

var _ domain.SweetRepository = (*SweetRepo)(nil)

func (r *SweetRepo) List() ([]domain.Sweet, error) {
	var sweets []domain.Sweet
	if err := r.db.Order("id ASC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search 名称或分类的大小写不敏感子串匹配（统一用 LOWER，不依赖库的默认 collation）
func (r *SweetRepo) Search(q string) ([]domain.Sweet, error) {
	like := "%" + strings.ToLower(q) + "%"
	var sweets []domain.Sweet
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like).
		Order("id ASC").
		Find(&sweets).Error
	if err != nil {
		return nil, err
	}
	return sweets, nil
}

func (r *SweetRepo) Create(s *domain.Sweet) error { return r.db.Create(s).Error }

func (r *SweetRepo) FindByID(id uint) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SweetRepo) Update(id uint, patch domain.SweetPatch) (*domain.Sweet, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if len(fields) > 0 {
		res := r.db.Model(&domain.Sweet{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(id)
}

func (r *SweetRepo) Delete(id uint) error {
	res := r.db.Where("id = ?", id).Delete(&domain.Sweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Purchase 单条条件 UPDATE 完成检查+递减，多实例并发下也不会把库存减成负数。
// 影响 0 行时再区分：记录不存在 → ErrNotFound；存在但 quantity=0 → ErrOutOfStock。
func (r *SweetRepo) Purchase(id uint) (*domain.Sweet, error) {
	res := r.db.Model(&domain.Sweet{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return nil, err // ErrNotFound 或底层错误
		}
		return nil, domain.ErrOutOfStock
	}
	return r.FindByID(id)
}

// Restock 原子递增，amount 的合法性由 service 层保证
func (r *SweetRepo) Restock(id uint, amount int64) (*domain.Sweet, error) {
	res := r.db.Model(&domain.Sweet{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(id)
}
