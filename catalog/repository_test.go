package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return NewRepository(db, nil, 6, time.Minute, logrus.New()), mock
}

func TestListProducts(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(8))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "slug", "user_id", "category_id"}).
			AddRow(7, "Caderno", "12.50", "caderno", 1, 2).
			AddRow(8, "Lápis", "1.99", "lapis", 1, 2))

	page, err := repo.ListProducts(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, int64(8), page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Caderno", page.Products[0].Name)
	assert.Equal(t, "12.50", page.Products[0].Price.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProductNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsByCategoryNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.ProductsByCategory(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriesWithoutCache(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Livros").
			AddRow(2, "Roupas"))

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, uint(2), categories[1].ID)
	assert.Equal(t, "Roupas", categories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProductNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteProduct(context.Background(), 3)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
