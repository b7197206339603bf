package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/models"
)

const productColumns = "product_id, product_name, description, category, price, quantity, created_at"

// sortColumns is the whitelist of columns list results may be ordered
// by. Sort parameters come from untrusted input and cannot be bound as
// query parameters, so anything off this list falls back to the
// default column.
var sortColumns = map[string]bool{
	"product_name": true,
	"category":     true,
	"price":        true,
	"quantity":     true,
	"created_at":   true,
}

const defaultSortColumn = "product_name"

// ProductWriteRepository handles product write operations
type ProductWriteRepository struct {
	db *sqlx.DB
}

func NewProductWriteRepository(db *sqlx.DB) *ProductWriteRepository {
	return &ProductWriteRepository{db: db}
}

// Save inserts a new product and returns the generated id.
func (r *ProductWriteRepository) Save(ctx context.Context, fields models.ProductFields) (int64, error) {
	const query = `
		INSERT INTO products (product_name, description, category, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING product_id
	`
	args := []any{fields.Name, fields.Description, fields.Category, fields.Price, fields.Quantity}

	var productID int64
	err := r.db.GetContext(ctx, &productID, query, args...)

	logger.Log.Infow("products insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", productID,
		"error", err,
	)

	return productID, err
}

// Update overwrites all mutable fields of the product in place.
// product_id and created_at are never touched. Returns
// ErrProductNotFound when no row matches.
func (r *ProductWriteRepository) Update(ctx context.Context, productID int64, fields models.ProductFields) error {
	const query = `
		UPDATE products
		SET product_name = $1, description = $2, category = $3, price = $4, quantity = $5
		WHERE product_id = $6
	`
	args := []any{fields.Name, fields.Description, fields.Category, fields.Price, fields.Quantity, productID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("products update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes the product row. Returns ErrProductNotFound when no
// row matches.
func (r *ProductWriteRepository) Delete(ctx context.Context, productID int64) error {
	const query = `DELETE FROM products WHERE product_id = $1`

	res, err := r.db.ExecContext(ctx, query, productID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("products delete",
		"query", query,
		"args", []any{productID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ProductReadRepository handles product read operations
type ProductReadRepository struct {
	db *sqlx.DB
}

func NewProductReadRepository(db *sqlx.DB) *ProductReadRepository {
	return &ProductReadRepository{db: db}
}

// GetByID returns the product with the given id, or nil if absent.
func (r *ProductReadRepository) GetByID(ctx context.Context, productID int64) (*models.ProductDB, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	var product models.ProductDB
	err := r.db.GetContext(ctx, &product, query, productID)

	logger.Log.Debugw("products select",
		"query", query,
		"args", []any{productID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns all products ordered by sortColumn/sortOrder. Both are
// checked against whitelists and silently fall back to product_name
// ascending; they are the only dynamic text in the query.
func (r *ProductReadRepository) List(ctx context.Context, sortColumn, sortOrder string) ([]models.ProductDB, error) {
	if !sortColumns[sortColumn] {
		sortColumn = defaultSortColumn
	}
	if strings.ToUpper(sortOrder) == "DESC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY %s %s`, productColumns, sortColumn, sortOrder)

	products := []models.ProductDB{}
	err := r.db.SelectContext(ctx, &products, query)

	logger.Log.Debugw("products list",
		"query", query,
		"result", len(products),
		"error", err,
	)

	return products, err
}

// Search returns products matching every supplied criterion,
// ordered by name ascending. Each present criterion appends one
// predicate; all values are bound as parameters.
func (r *ProductReadRepository) Search(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE 1=1`)
	var args []any

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		args = append(args, pattern, pattern)
		fmt.Fprintf(&sb, " AND (product_name ILIKE $%d OR description ILIKE $%d)", len(args)-1, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		fmt.Fprintf(&sb, " AND price >= $%d", len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		fmt.Fprintf(&sb, " AND price <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY product_name ASC")
	query := sb.String()

	products := []models.ProductDB{}
	err := r.db.SelectContext(ctx, &products, query, args...)

	logger.Log.Debugw("products search",
		"query", query,
		"args", args,
		"result", len(products),
		"error", err,
	)

	return products, err
}

// SuggestNames returns up to limit distinct product names containing
// term as a substring.
func (r *ProductReadRepository) SuggestNames(ctx context.Context, term string, limit int) ([]string, error) {
	const query = `
		SELECT DISTINCT product_name
		FROM products
		WHERE product_name ILIKE $1
		ORDER BY product_name
		LIMIT $2
	`

	names := []string{}
	err := r.db.SelectContext(ctx, &names, query, "%"+term+"%", limit)

	logger.Log.Debugw("products suggest",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{term, limit},
		"result", len(names),
		"error", err,
	)

	return names, err
}

// Stats computes the dashboard aggregates in one pass.
func (r *ProductReadRepository) Stats(ctx context.Context) (*models.ProductStats, error) {
	const query = `
		SELECT COUNT(*) AS total_products,
		       COALESCE(SUM(price * quantity), 0) AS total_value,
		       COUNT(DISTINCT category) AS category_count,
		       COUNT(*) FILTER (WHERE quantity < $1) AS low_stock_count
		FROM products
	`

	var stats models.ProductStats
	err := r.db.GetContext(ctx, &stats, query, models.LowStockThreshold)

	logger.Log.Debugw("products stats",
		"query", strings.Join(strings.Fields(query), " "),
		"result", stats,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
