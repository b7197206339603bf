package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashimkarki/inventory-service/internal/validation"
)

// ProductRequest represents the JSON body for creating or updating a
// product. Price and quantity arrive as strings so that malformed
// values surface as validation messages rather than decode failures.
// swagger:model ProductRequest
type ProductRequest struct {
	// Product name, at most 100 characters
	// required: true
	// example: Wireless Mouse
	Name string `json:"name"`

	// Description, at most 500 characters
	// required: true
	// example: Ergonomic 2.4GHz wireless mouse
	Description string `json:"description"`

	// One of the fixed categories
	// required: true
	// example: Electronics
	Category string `json:"category"`

	// Non-negative decimal price
	// required: true
	// example: 29.99
	Price string `json:"price"`

	// Non-negative integer quantity
	// required: true
	// example: 150
	Quantity string `json:"quantity"`
}

func (r ProductRequest) input() validation.ProductInput {
	return validation.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

// productID extracts the {id} path parameter.
func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
