package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"Storefront/catalog"
	"Storefront/models"
	"Storefront/session"
	"Storefront/views"
)

const dashboardPath = "/admin/dashboard"

// Dashboard 後台首頁，列出所有商品及數量統計
func (h *Handler) Dashboard(c *gin.Context) {
	page, err := h.catalog.ListProducts(c, pageParam(c))
	if err != nil {
		h.logger(c).WithError(err).Error("無法讀取商品列表")
		h.renderError(c, http.StatusInternalServerError, "無法讀取商品列表")
		return
	}

	summary, err := h.catalog.Summary(c)
	if err != nil {
		h.logger(c).WithError(err).Error("無法讀取統計資料")
		h.renderError(c, http.StatusInternalServerError, "無法讀取統計資料")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", struct {
		views.Layout
		Page    catalog.Page
		Summary catalog.Summary
	}{
		Layout:  h.layout(c, "後台"),
		Page:    page,
		Summary: summary,
	})
}

// CreateProduct 新增商品，賣家為目前登入的使用者
func (h *Handler) CreateProduct(c *gin.Context) {
	var newProduct struct {
		Name        string `form:"name" binding:"required"`
		Description string `form:"description"`
		Price       string `form:"price" binding:"required"`
		ImageURL    string `form:"imageURL"`
		CategoryID  uint   `form:"categoryID" binding:"required"`
	}
	if err := c.ShouldBind(&newProduct); err != nil {
		h.redirectTo(c, dashboardPath, session.FlashError, "商品資料不完整")
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(newProduct.Price))
	if err != nil || price.IsNegative() {
		h.redirectTo(c, dashboardPath, session.FlashError, "價格格式錯誤")
		return
	}

	product := models.Product{
		Name:        strings.TrimSpace(newProduct.Name),
		Description: newProduct.Description,
		Price:       price.Round(2),
		UserID:      c.GetUint("UserID"),
		CategoryID:  newProduct.CategoryID,
	}
	if imageURL := strings.TrimSpace(newProduct.ImageURL); imageURL != "" {
		product.ImageURL = &imageURL
	}

	if err := h.catalog.CreateProduct(c, &product); err != nil {
		h.logger(c).WithError(err).Error("新增商品失敗")
		h.redirectTo(c, dashboardPath, session.FlashError, "新增商品失敗")
		return
	}

	h.redirectTo(c, dashboardPath, session.FlashSuccess, "成功新增商品")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := idParam(c, "productID")
	if !ok {
		h.redirectTo(c, dashboardPath, session.FlashError, "找不到此商品")
		return
	}

	if err := h.catalog.DeleteProduct(c, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.redirectTo(c, dashboardPath, session.FlashError, "找不到此商品")
			return
		}
		h.logger(c).WithError(err).Error("刪除商品失敗")
		h.redirectTo(c, dashboardPath, session.FlashError, "刪除商品失敗")
		return
	}

	h.redirectTo(c, dashboardPath, session.FlashSuccess, "成功刪除商品")
}

func (h *Handler) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		h.redirectTo(c, dashboardPath, session.FlashError, "分類名稱不得為空")
		return
	}

	if _, err := h.catalog.CreateCategory(c, name); err != nil {
		h.logger(c).WithError(err).Error("新增分類失敗")
		h.redirectTo(c, dashboardPath, session.FlashError, "新增分類失敗")
		return
	}

	h.redirectTo(c, dashboardPath, session.FlashSuccess, "成功新增分類")
}
