package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken 已簽發的JWT，刪除即代表登出
type LoginToken struct {
	gorm.Model
	TokenID        string `gorm:"size:36;uniqueIndex;not null"`
	ExpirationTime time.Time
	UserID         uint
	Role           string
}
