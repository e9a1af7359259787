package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"Storefront/jwt"
)

const TokenCookieName = "token"

// TokenChecker 查詢Token是否仍有效(尚未登出)
type TokenChecker interface {
	LoginTokenActive(ctx context.Context, tokenID string) (bool, error)
}

// 從Cookie或Authorization header取得Token
func readToken(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthMiddleware 驗證登入Token，驗證失敗視為未登入並繼續請求
func AuthMiddleware(tokens *jwt.Manager, checker TokenChecker, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := readToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.VerifyToken(token)
		if err != nil {
			log.WithError(err).Debug("無法驗證Token")
			c.Next()
			return
		}

		//從資料庫檢查Token是否刪除
		active, err := checker.LoginTokenActive(c, claims.ID)
		if err != nil {
			log.WithError(err).Error("無法查詢Login Token")
			c.Next()
			return
		}
		if !active {
			c.Next()
			return
		}

		c.Set("TokenID", claims.ID)
		c.Set("UserID", claims.UserID)
		c.Set("Role", claims.Role)
		c.Next()
	}
}
