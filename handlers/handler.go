package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"Storefront/cart"
	"Storefront/catalog"
	"Storefront/jwt"
	"Storefront/models"
	"Storefront/session"
	"Storefront/views"
)

// Catalog 商品及分類資料
type Catalog interface {
	ListProducts(ctx context.Context, page int) (catalog.Page, error)
	ProductsByCategory(ctx context.Context, categoryID uint, page int) (models.Category, catalog.Page, error)
	FindProduct(ctx context.Context, id uint) (models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Summary(ctx context.Context) (catalog.Summary, error)
}

// Accounts 登入相關資料
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	SaveLoginToken(ctx context.Context, token models.LoginToken) error
	DeleteLoginToken(ctx context.Context, tokenID string) error
}

type Deps struct {
	Catalog       Catalog
	Accounts      Accounts
	Carts         *cart.Service
	Sessions      *session.Manager
	Tokens        *jwt.Manager
	TokenTTL      time.Duration
	SecureCookies bool
	Log           logrus.FieldLogger
}

type Handler struct {
	catalog       Catalog
	accounts      Accounts
	carts         *cart.Service
	sessions      *session.Manager
	tokens        *jwt.Manager
	tokenTTL      time.Duration
	secureCookies bool
	log           logrus.FieldLogger
	now           func() time.Time
}

func New(deps Deps) *Handler {
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{
		catalog:       deps.Catalog,
		accounts:      deps.Accounts,
		carts:         deps.Carts,
		sessions:      deps.Sessions,
		tokens:        deps.Tokens,
		tokenTTL:      ttl,
		secureCookies: deps.SecureCookies,
		log:           deps.Log,
		now:           time.Now,
	}
}

func (h *Handler) logger(c *gin.Context) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"session": session.ID(c),
		"path":    c.Request.URL.Path,
	})
}

// layout 取得每個頁面共用的資料，讀取失敗只記錄錯誤
func (h *Handler) layout(c *gin.Context, title string) views.Layout {
	l := views.Layout{Title: title}

	categories, err := h.catalog.Categories(c)
	if err != nil {
		h.logger(c).WithError(err).Error("無法讀取分類選單")
	} else {
		l.Categories = categories
	}

	count, err := h.carts.Count(c, session.ID(c))
	if err != nil {
		h.logger(c).WithError(err).Error("無法讀取購物車數量")
	} else {
		l.CartCount = count
	}

	_, l.LoggedIn = c.Get("UserID")

	if flash, ok := h.sessions.PopFlash(c); ok {
		l.Flash = &flash
	}
	return l
}

func (h *Handler) flash(c *gin.Context, kind, message string) {
	if err := h.sessions.Flash(c, kind, message); err != nil {
		h.logger(c).WithError(err).Warn("無法設定Flash訊息")
	}
}

// redirectBack 設定訊息並導回上一頁
func (h *Handler) redirectBack(c *gin.Context, kind, message string) {
	h.flash(c, kind, message)
	c.Redirect(http.StatusFound, session.BackURL(c))
}

func (h *Handler) redirectTo(c *gin.Context, location, kind, message string) {
	h.flash(c, kind, message)
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", views.ErrorPage{
		Layout:  h.layout(c, message),
		Message: message,
	})
}
