package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"Storefront/cart"
	"Storefront/session"
	"Storefront/views"
)

// 將購物車錯誤轉成訊息，非預期錯誤使用fallback並記錄
func (h *Handler) cartErrorMessage(c *gin.Context, err error, fallback string) string {
	switch {
	case errors.Is(err, cart.ErrInvalidItem):
		return "商品資料或數量不合法"
	case errors.Is(err, cart.ErrItemNotFound):
		return "購物車沒有此商品"
	default:
		h.logger(c).WithError(err).Error(fallback)
		return fallback
	}
}

func parseItemID(id string) (uint, error) {
	itemID, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || itemID == 0 {
		return 0, cart.ErrInvalidItem
	}
	return uint(itemID), nil
}

// CartList 查詢購物車商品
func (h *Handler) CartList(c *gin.Context) {
	items, err := h.carts.Content(c, session.ID(c))
	if err != nil {
		h.logger(c).WithError(err).Error("查詢購物車失敗")
		h.renderError(c, http.StatusInternalServerError, "查詢購物車失敗")
		return
	}

	total, err := h.carts.Total(c, session.ID(c))
	if err != nil {
		h.logger(c).WithError(err).Error("計算購物車總計失敗")
		h.renderError(c, http.StatusInternalServerError, "查詢購物車失敗")
		return
	}

	c.HTML(http.StatusOK, "cart.html", struct {
		views.Layout
		Items []cart.Item
		Total decimal.Decimal
	}{
		Layout: h.layout(c, "購物車"),
		Items:  items,
		Total:  total,
	})
}

// AddToCart 新增商品至購物車，名稱及價格以表單送出的值為準
func (h *Handler) AddToCart(c *gin.Context) {
	var itemReq struct {
		ID       string `form:"id"`
		Name     string `form:"name"`
		Price    string `form:"price"`
		Quantity string `form:"qnt"`
	}
	if err := c.ShouldBind(&itemReq); err != nil {
		h.redirectBack(c, session.FlashError, "商品資料或數量不合法")
		return
	}

	item, err := cart.ParseItem(itemReq.ID, itemReq.Name, itemReq.Price, itemReq.Quantity)
	if err == nil {
		err = h.carts.Add(c, session.ID(c), item)
	}
	if err != nil {
		h.redirectBack(c, session.FlashError, h.cartErrorMessage(c, err, "加入購物車時發生錯誤!"))
		return
	}

	h.redirectTo(c, "/cart", session.FlashSuccess, "成功加入購物車!")
}

// RemoveFromCart 刪除購物車商品，購物車沒有此商品也視為成功
func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, err := parseItemID(c.PostForm("id"))
	if err == nil {
		err = h.carts.Remove(c, session.ID(c), id)
	}
	if err != nil {
		h.redirectBack(c, session.FlashError, h.cartErrorMessage(c, err, "刪除購物車商品時發生錯誤"))
		return
	}

	h.redirectBack(c, session.FlashSuccess, "成功刪除商品!")
}

// UpdateCartItem 以新數量取代購物車商品數量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, err := parseItemID(c.PostForm("id"))
	if err == nil {
		var quantity int
		quantity, err = cart.ParseQuantity(c.PostForm("qnt"))
		if err == nil {
			err = h.carts.Update(c, session.ID(c), id, quantity)
		}
	}
	if err != nil {
		h.redirectBack(c, session.FlashError, h.cartErrorMessage(c, err, "更新商品時發生錯誤!"))
		return
	}

	h.redirectBack(c, session.FlashSuccess, "成功更新商品!")
}

// ClearCart 清空購物車
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c, session.ID(c)); err != nil {
		h.redirectBack(c, session.FlashError, h.cartErrorMessage(c, err, "清空購物車時發生錯誤!"))
		return
	}

	h.redirectBack(c, session.FlashWarning, "購物車已清空!")
}
