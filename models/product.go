package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `gorm:"not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Slug        string          `gorm:"not null;index"`
	ImageURL    *string
	//賣家，刪除或更新使用者時一併處理其商品
	UserID     uint     `gorm:"not null"`
	User       User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CategoryID uint     `gorm:"not null"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
