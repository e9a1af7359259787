package cart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItem  = errors.New("cart: invalid item")
	ErrItemNotFound = errors.New("cart: item not found")
)

// Item 購物車內的一筆商品，名稱與價格在加入時複製，不會跟著商品資料變動
type Item struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal 單價乘以數量
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart 以商品ID為鍵的購物車內容，保留加入順序
type Cart struct {
	Items []Item `json:"items"`
}

// abs 對最小整數取絕對值仍為負數，呼叫端需再檢查
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ParseItem 將表單字串轉成Item，數量取絕對值
func ParseItem(id, name, price, quantity string) (Item, error) {
	itemID, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return Item{}, ErrInvalidItem
	}
	itemPrice, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return Item{}, ErrInvalidItem
	}
	qnt, err := ParseQuantity(quantity)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:       uint(itemID),
		Name:     strings.TrimSpace(name),
		Price:    itemPrice,
		Quantity: qnt,
	}
	if err := item.validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// ParseQuantity 解析數量並取絕對值，小於1視為不合法
func ParseQuantity(quantity string) (int, error) {
	qnt, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return 0, ErrInvalidItem
	}
	qnt = abs(qnt)
	if qnt < 1 {
		return 0, ErrInvalidItem
	}
	return qnt, nil
}

func (i Item) validate() error {
	if i.ID == 0 || i.Quantity < 1 || i.Price.IsNegative() {
		return ErrInvalidItem
	}
	return nil
}

func (c *Cart) index(id uint) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add 新增商品，已存在則累加數量並保留原本的名稱與價格
func (c *Cart) Add(item Item) error {
	item.Quantity = abs(item.Quantity)
	if err := item.validate(); err != nil {
		return err
	}

	if i := c.index(item.ID); i >= 0 {
		//累加後溢位
		if c.Items[i].Quantity > math.MaxInt-item.Quantity {
			return ErrInvalidItem
		}
		c.Items[i].Quantity += item.Quantity
		return nil
	}
	c.Items = append(c.Items, item)
	return nil
}

// Remove 刪除商品，不存在時不做任何事
func (c *Cart) Remove(id uint) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Update 以新數量取代原本數量
func (c *Cart) Update(id uint, quantity int) error {
	quantity = abs(quantity)
	if quantity < 1 {
		return ErrInvalidItem
	}
	i := c.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	return nil
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total 計算所有商品的單價乘數量總和
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Content 回傳目前商品的複本
func (c *Cart) Content() []Item {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return items
}

func (c *Cart) Count() int {
	return len(c.Items)
}
