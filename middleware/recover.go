package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"Storefront/session"
)

// RecoverMiddleware panic時記錄錯誤並導回上一頁，不讓請求直接失敗
func RecoverMiddleware(sessions *session.Manager, log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(logrus.Fields{
			"panic":  recovered,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("處理請求時發生panic")

		if session.ID(c) != "" {
			if err := sessions.Flash(c, session.FlashError, "發生錯誤，請稍後再試"); err != nil {
				log.WithError(err).Warn("無法設定Flash訊息")
			}
		}
		c.Redirect(http.StatusFound, session.BackURL(c))
		c.Abort()
	})
}
