package domain

import "time"

type Sweet struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Category  string    `gorm:"size:64;not null;index" json:"category"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	Image     string    `gorm:"size:32" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Sweet) TableName() string { return "sweets" }

// SweetPatch 部分更新：nil 表示该字段不改
type SweetPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int64   `json:"quantity"`
	Image    *string  `json:"image"`
}

type SweetRepository interface {
	List() ([]Sweet, error)
	Search(q string) ([]Sweet, error)
	Create(s *Sweet) error
	FindByID(id uint) (*Sweet, error)
	Update(id uint, patch SweetPatch) (*Sweet, error)
	Delete(id uint) error
	// Purchase 条件递减：quantity>0 才减 1，库存正确性必须落在存储层
	Purchase(id uint) (*Sweet, error)
	Restock(id uint, amount int64) (*Sweet, error)
}
