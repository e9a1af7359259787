package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"Storefront/models"
)

var (
	ErrProductNotFound  = errors.New("catalog: product not found")
	ErrCategoryNotFound = errors.New("catalog: category not found")
)

const menuCacheKey = "catalog:categories"

// Summary 後台首頁顯示的數量統計
type Summary struct {
	Products   int64
	Categories int64
	Users      int64
}

type menuEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Repository struct {
	db      *gorm.DB
	rdb     redis.Cmdable
	perPage int
	menuTTL time.Duration
	log     logrus.FieldLogger
}

// NewRepository rdb 為nil時不使用快取
func NewRepository(db *gorm.DB, rdb redis.Cmdable, perPage int, menuTTL time.Duration, log logrus.FieldLogger) *Repository {
	return &Repository{db: db, rdb: rdb, perPage: perPage, menuTTL: menuTTL, log: log}
}

// ListProducts 查詢商品列表
func (r *Repository) ListProducts(ctx context.Context, page int) (Page, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count products: %w", err)
	}

	p := NewPage(total, page, r.perPage)
	err := db.
		Order("id").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&p.Products).
		Error
	if err != nil {
		return Page{}, fmt.Errorf("list products: %w", err)
	}
	return p, nil
}

// ProductsByCategory 查詢分類及其商品
func (r *Repository) ProductsByCategory(ctx context.Context, categoryID uint, page int) (models.Category, Page, error) {
	db := r.db.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category, Page{}, ErrCategoryNotFound
		}
		return category, Page{}, fmt.Errorf("find category: %w", err)
	}

	var total int64
	err := db.
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&total).
		Error
	if err != nil {
		return category, Page{}, fmt.Errorf("count category products: %w", err)
	}

	p := NewPage(total, page, r.perPage)
	err = db.
		Where("category_id = ?", categoryID).
		Order("id").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&p.Products).
		Error
	if err != nil {
		return category, Page{}, fmt.Errorf("list category products: %w", err)
	}
	return category, p, nil
}

// FindProduct 查詢商品詳細資料，包含賣家及分類
func (r *Repository) FindProduct(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Preload("Category").
		First(&product, id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product, ErrProductNotFound
		}
		return product, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// Categories 查詢分類選單，先讀Redis，失敗則從資料庫讀取並寫回Redis
func (r *Repository) Categories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := r.cachedCategories(ctx); ok {
		return categories, nil
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	r.cacheCategories(ctx, categories)
	return categories, nil
}

func (r *Repository) cachedCategories(ctx context.Context) ([]models.Category, bool) {
	if r.rdb == nil {
		return nil, false
	}
	value, err := r.rdb.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithError(err).Warn("無法從Redis讀取分類選單")
		}
		return nil, false
	}

	var entries []menuEntry
	if err := json.Unmarshal(value, &entries); err != nil {
		r.log.WithError(err).Warn("無法反序列化分類選單")
		return nil, false
	}
	categories := make([]models.Category, len(entries))
	for i, entry := range entries {
		categories[i].ID = entry.ID
		categories[i].Name = entry.Name
	}
	return categories, true
}

func (r *Repository) cacheCategories(ctx context.Context, categories []models.Category) {
	if r.rdb == nil {
		return
	}
	entries := make([]menuEntry, len(categories))
	for i, category := range categories {
		entries[i] = menuEntry{ID: category.ID, Name: category.Name}
	}
	value, err := json.Marshal(entries)
	if err != nil {
		r.log.WithError(err).Warn("無法序列化分類選單")
		return
	}
	if err := r.rdb.Set(ctx, menuCacheKey, value, r.menuTTL).Err(); err != nil {
		r.log.WithError(err).Warn("無法將分類選單加入Redis")
	}
}

func (r *Repository) invalidateMenu(ctx context.Context) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
		r.log.WithError(err).Warn("無法將分類選單從Redis刪除")
	}
}

// CreateCategory 新增分類並清除選單快取
func (r *Repository) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	category := models.Category{Name: strings.TrimSpace(name)}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return category, fmt.Errorf("create category: %w", err)
	}
	r.invalidateMenu(ctx)
	return category, nil
}

// CreateProduct 新增商品，未提供slug時由名稱產生
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// DeleteProduct 刪除商品
func (r *Repository) DeleteProduct(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Summary 商品、分類及使用者數量
func (r *Repository) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Product{}).Count(&summary.Products).Error; err != nil {
		return summary, fmt.Errorf("count products: %w", err)
	}
	if err := db.Model(&models.Category{}).Count(&summary.Categories).Error; err != nil {
		return summary, fmt.Errorf("count categories: %w", err)
	}
	if err := db.Model(&models.User{}).Count(&summary.Users).Error; err != nil {
		return summary, fmt.Errorf("count users: %w", err)
	}
	return summary, nil
}

// Slugify 產生網址用的名稱，只保留字母數字並以-連接
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
