package models

import (
	"time"
)

// Categories is the fixed set of product categories accepted by the
// add and edit flows.
var Categories = []string{
	"Electronics",
	"Furniture",
	"Accessories",
	"Clothing",
	"Books",
	"Toys",
	"Sports",
	"Other",
}

// IsValidCategory reports whether category is one of Categories.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ProductDB represents a product record in the database
type ProductDB struct {
	ProductID   int64     `json:"id" db:"product_id"`          // Primary key
	Name        string    `json:"name" db:"product_name"`      // Product name
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int64     `json:"quantity" db:"quantity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // Set once at creation
}

// ProductFields holds the validated mutable fields of a product,
// ready to be persisted.
type ProductFields struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int64
}

// ProductFilter holds the optional conjunctive search criteria.
// Nil price bounds mean the bound is absent or was not a valid
// non-negative number.
type ProductFilter struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ProductStats are the derived dashboard aggregates.
type ProductStats struct {
	TotalProducts  int64   `json:"total_products" db:"total_products"`
	TotalValue     float64 `json:"total_value" db:"total_value"`         // Σ(price × quantity)
	CategoryCount  int64   `json:"category_count" db:"category_count"`   // distinct categories in use
	LowStockCount  int64   `json:"low_stock_count" db:"low_stock_count"` // quantity below LowStockThreshold
}

// LowStockThreshold is the fixed quantity below which a product counts
// as low stock.
const LowStockThreshold = 10
