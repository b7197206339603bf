package repositories

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/ashimkarki/inventory-service/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleFields() models.ProductFields {
	return models.ProductFields{
		Name:        "Laptop",
		Description: "A fast laptop",
		Category:    "Electronics",
		Price:       999.99,
		Quantity:    5,
	}
}

func TestProductWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductWriteRepository(db)

	f := sampleFields()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(f.Name, f.Description, f.Category, f.Price, f.Quantity).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(int64(17)))

	id, err := repo.Save(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, int64(17), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductWriteRepository(db)
	f := sampleFields()

	t.Run("updates existing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(f.Name, f.Description, f.Category, f.Price, f.Quantity, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), 3, f)
		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(f.Name, f.Description, f.Category, f.Price, f.Quantity, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 404, f)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductWriteRepository_Delete_Twice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductWriteRepository(db)

	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 9))
	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "product_name", "description", "category", "price", "quantity", "created_at",
	})
}

func TestProductReadRepository_List_SortWhitelist(t *testing.T) {
	tests := []struct {
		name        string
		sortColumn  string
		sortOrder   string
		wantOrderBy string
	}{
		{"valid column and order", "price", "DESC", "ORDER BY price DESC"},
		{"bogus column falls back", "bogus; DROP TABLE products", "ASC", "ORDER BY product_name ASC"},
		{"bogus order falls back", "quantity", "sideways", "ORDER BY quantity ASC"},
		{"lowercase desc accepted", "created_at", "desc", "ORDER BY created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductReadRepository(db)

			mock.ExpectQuery("SELECT (.+) FROM products " + tt.wantOrderBy).
				WillReturnRows(productRows())

			_, err := repo.List(context.Background(), tt.sortColumn, tt.sortOrder)
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductReadRepository_Search_PredicateAssembly(t *testing.T) {
	minPrice := 10.0
	maxPrice := 50.0

	tests := []struct {
		name      string
		filter    models.ProductFilter
		wantQuery string
		wantArgs  []driver.Value
	}{
		{
			name:      "keyword only",
			filter:    models.ProductFilter{Keyword: "lap"},
			wantQuery: `AND \(product_name ILIKE \$1 OR description ILIKE \$2\) ORDER BY product_name ASC`,
			wantArgs:  []driver.Value{"%lap%", "%lap%"},
		},
		{
			name:      "min price only",
			filter:    models.ProductFilter{MinPrice: &minPrice},
			wantQuery: `AND price >= \$1 ORDER BY product_name ASC`,
			wantArgs:  []driver.Value{minPrice},
		},
		{
			name: "all criteria",
			filter: models.ProductFilter{
				Keyword:  "chair",
				Category: "Furniture",
				MinPrice: &minPrice,
				MaxPrice: &maxPrice,
			},
			wantQuery: `AND \(product_name ILIKE \$1 OR description ILIKE \$2\) AND category = \$3 AND price >= \$4 AND price <= \$5 ORDER BY product_name ASC`,
			wantArgs:  []driver.Value{"%chair%", "%chair%", "Furniture", minPrice, maxPrice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductReadRepository(db)

			mock.ExpectQuery(tt.wantQuery).
				WithArgs(tt.wantArgs...).
				WillReturnRows(productRows())

			_, err := repo.Search(context.Background(), tt.filter)
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductReadRepository_SuggestNames(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductReadRepository(db)

	mock.ExpectQuery("SELECT DISTINCT product_name").
		WithArgs("%lap%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"product_name"}).
			AddRow("Laptop").
			AddRow("Laptop stand"))

	names, err := repo.SuggestNames(context.Background(), "lap", 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Laptop", "Laptop stand"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductReadRepository_Stats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductReadRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.LowStockThreshold).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_products", "total_value", "category_count", "low_stock_count",
		}).AddRow(int64(12), 3456.78, int64(4), int64(2)))

	stats, err := repo.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalProducts)
	assert.InDelta(t, 3456.78, stats.TotalValue, 0.001)
	assert.Equal(t, int64(4), stats.CategoryCount)
	assert.Equal(t, int64(2), stats.LowStockCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
