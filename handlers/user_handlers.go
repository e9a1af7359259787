package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"Storefront/accounts"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/session"
)

func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginForm 登入頁面，已登入則回首頁
func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := c.Get("UserID"); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login.html", h.layout(c, "登入"))
}

func (h *Handler) Login(c *gin.Context) {
	//檢查是否已經登入
	if _, ok := c.Get("UserID"); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var loginReq struct {
		Email    string `form:"email" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&loginReq); err != nil || !accounts.ValidateEmail(loginReq.Email) {
		h.redirectBack(c, session.FlashError, "信箱或密碼不合法!")
		return
	}

	user, err := h.accounts.Authenticate(c, loginReq.Email, loginReq.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			h.redirectBack(c, session.FlashError, "登入失敗!")
			return
		}
		h.logger(c).WithError(err).Error("查詢使用者失敗")
		h.redirectBack(c, session.FlashError, "發生錯誤，請稍後再試")
		return
	}

	//生成JWT Token
	expiration := h.now().Add(h.tokenTTL)
	token, tokenID, err := h.tokens.GenerateToken(user.ID, user.Role, expiration)
	if err != nil {
		h.logger(c).WithError(err).Error("生成JWT Token錯誤")
		h.redirectBack(c, session.FlashError, "發生錯誤，請稍後再試")
		return
	}

	//儲存LoginToken
	err = h.accounts.SaveLoginToken(c, models.LoginToken{
		TokenID:        tokenID,
		ExpirationTime: expiration,
		UserID:         user.ID,
		Role:           user.Role,
	})
	if err != nil {
		h.logger(c).WithError(err).Error("儲存Login Token失敗")
		h.redirectBack(c, session.FlashError, "發生錯誤，請稍後再試")
		return
	}

	h.setTokenCookie(c, token, int(h.tokenTTL.Seconds()))
	if err := h.sessions.Regenerate(c); err != nil {
		h.logger(c).WithError(err).Warn("無法更換Session ID")
	}

	h.redirectTo(c, h.sessions.PopIntended(c, "/"), session.FlashSuccess, "成功登入")
}

// Logout 刪除Login Token並清除Session
func (h *Handler) Logout(c *gin.Context) {
	if tokenID := c.GetString("TokenID"); tokenID != "" {
		if err := h.accounts.DeleteLoginToken(c, tokenID); err != nil {
			h.logger(c).WithError(err).Error("刪除Login Token失敗")
		}
	}
	h.setTokenCookie(c, "", -1)

	if err := h.sessions.Destroy(c); err != nil {
		h.logger(c).WithError(err).Error("清除Session失敗")
	}

	h.redirectTo(c, "/", session.FlashSuccess, "成功登出")
}
