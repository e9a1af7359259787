package catalog

import "Storefront/models"

// Page 一頁商品及分頁資訊
type Page struct {
	Products    []models.Product
	CurrentPage int
	PerPage     int
	Total       int64
	LastPage    int
}

// NewPage 計算分頁，頁碼超出範圍時修正到第一頁或最後一頁
func NewPage(total int64, page, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}
	return Page{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

func (p Page) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

func (p Page) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Page) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

func (p Page) PrevPage() int {
	return p.CurrentPage - 1
}

func (p Page) NextPage() int {
	return p.CurrentPage + 1
}

// Pages 所有頁碼，給模板產生連結
func (p Page) Pages() []int {
	pages := make([]int, p.LastPage)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
