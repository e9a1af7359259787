package views

import (
	"Storefront/models"
	"Storefront/session"
)

// Layout 每個頁面共用的資料
type Layout struct {
	Title      string
	Categories []models.Category
	CartCount  int
	LoggedIn   bool
	Flash      *session.Flash
}

type ErrorPage struct {
	Layout
	Message string
}
