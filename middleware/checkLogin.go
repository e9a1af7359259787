package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"Storefront/session"
)

// CheckLoginMiddleware 檢查是否有登入，沒有則記住網址並導向登入頁
func CheckLoginMiddleware(sessions *session.Manager, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("UserID"); exists {
			c.Next()
			return
		}

		if err := sessions.SetIntended(c, c.Request.URL.RequestURI()); err != nil {
			log.WithError(err).Warn("無法記錄登入後導向網址")
		}
		if err := sessions.Flash(c, session.FlashError, "請先登入"); err != nil {
			log.WithError(err).Warn("無法設定Flash訊息")
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
