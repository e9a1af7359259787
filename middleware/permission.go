package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Storefront/models"
	"Storefront/views"
)

// 檢查是否有admin權限，沒有則中止請求
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("Role") != models.RoleAdmin {
			c.HTML(http.StatusForbidden, "error.html", views.ErrorPage{
				Layout:  views.Layout{Title: "沒有權限", LoggedIn: true},
				Message: "沒有權限",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
