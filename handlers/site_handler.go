package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Storefront/catalog"
	"Storefront/models"
	"Storefront/views"
)

// 取得頁碼，不合法時使用第一頁
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Index 查詢商品列表
func (h *Handler) Index(c *gin.Context) {
	page, err := h.catalog.ListProducts(c, pageParam(c))
	if err != nil {
		h.logger(c).WithError(err).Error("無法讀取商品列表")
		h.renderError(c, http.StatusInternalServerError, "無法讀取商品列表")
		return
	}

	c.HTML(http.StatusOK, "home.html", struct {
		views.Layout
		Page catalog.Page
	}{
		Layout: h.layout(c, "首頁"),
		Page:   page,
	})
}

// ProductDetails 查詢商品詳細資料
func (h *Handler) ProductDetails(c *gin.Context) {
	productID, ok := idParam(c, "productID")
	if !ok {
		h.renderError(c, http.StatusNotFound, "找不到此商品")
		return
	}

	product, err := h.catalog.FindProduct(c, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.renderError(c, http.StatusNotFound, "找不到此商品")
			return
		}
		h.logger(c).WithError(err).Error("查詢商品資料失敗")
		h.renderError(c, http.StatusInternalServerError, "查詢商品資料失敗")
		return
	}

	c.HTML(http.StatusOK, "details.html", struct {
		views.Layout
		Product models.Product
	}{
		Layout:  h.layout(c, product.Name),
		Product: product,
	})
}

// CategoryProducts 查詢分類商品
func (h *Handler) CategoryProducts(c *gin.Context) {
	categoryID, ok := idParam(c, "categoryID")
	if !ok {
		h.renderError(c, http.StatusNotFound, "找不到此分類")
		return
	}

	category, page, err := h.catalog.ProductsByCategory(c, categoryID, pageParam(c))
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			h.renderError(c, http.StatusNotFound, "找不到此分類")
			return
		}
		h.logger(c).WithError(err).Error("無法讀取分類商品")
		h.renderError(c, http.StatusInternalServerError, "無法讀取分類商品")
		return
	}

	c.HTML(http.StatusOK, "category.html", struct {
		views.Layout
		Category models.Category
		Page     catalog.Page
	}{
		Layout:   h.layout(c, category.Name),
		Category: category,
		Page:     page,
	})
}
