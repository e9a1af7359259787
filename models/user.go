package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Email       string `gorm:"size:191;unique;not null"`
	Password    string `gorm:"not null"`
	Role        string `gorm:"not null"`
	Products    []Product
	LoginTokens []LoginToken
}
