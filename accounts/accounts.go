package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Storefront/models"
)

var (
	ErrUserNotFound       = errors.New("accounts: user not found")
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
)

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$")

// ValidateEmail 檢查信箱是否合法
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// FindUserByEmail 依信箱查詢使用者
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", strings.TrimSpace(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Authenticate 檢查信箱及密碼，找不到帳號或密碼錯誤都回傳ErrInvalidCredentials
func (r *Repository) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := r.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return user, ErrInvalidCredentials
		}
		return user, err
	}

	//檢查密碼是否正確
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return user, ErrInvalidCredentials
	}
	return user, nil
}

// SaveLoginToken 儲存已簽發的Token
func (r *Repository) SaveLoginToken(ctx context.Context, token models.LoginToken) error {
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		return fmt.Errorf("save login token: %w", err)
	}
	return nil
}

// LoginTokenActive 檢查Token是否尚未登出且未過期
func (r *Repository) LoginTokenActive(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("token_id = ? AND expiration_time > ?", tokenID, r.now()).
		Count(&count).
		Error
	if err != nil {
		return false, fmt.Errorf("check login token: %w", err)
	}
	return count > 0, nil
}

// DeleteLoginToken 刪除Token，不存在時不視為錯誤
func (r *Repository) DeleteLoginToken(ctx context.Context, tokenID string) error {
	err := r.db.
		WithContext(ctx).
		Where("token_id = ?", tokenID).
		Delete(&models.LoginToken{}).
		Error
	if err != nil {
		return fmt.Errorf("delete login token: %w", err)
	}
	return nil
}

// SeedUser 建立帳號，信箱已存在則略過
func (r *Repository) SeedUser(ctx context.Context, name, email, password, role string) (models.User, error) {
	existing, err := r.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return existing, err
	}

	//將密碼Hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return user, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
