package handlers

import (
	"context"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/models"
)

// ProductLister defines the interface that the product listing service
// must implement.
type ProductLister interface {
	List(ctx context.Context, sortField, sortOrder string) ([]models.ProductDB, error)
}

// ProductListResponse is the listing body
// swagger:model ProductListResponse
type ProductListResponse struct {
	Products []models.ProductDB `json:"products"`

	// Number of products returned
	// example: 3
	Count int `json:"count"`
}

// NewListProductsHandler returns an HTTP handler for the sorted
// product listing. Unknown sort fields fall back to the name column
// and unknown orders to ascending.
// @Summary List products
// @Description Returns all products ordered by a whitelisted column.
// @Tags products
// @Produce json
// @Param sort query string false "Sort field: name, category, price, quantity or createdAt" default(name)
// @Param order query string false "asc or desc" default(asc)
// @Success 200 {object} handlers.ProductListResponse "Products"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /products [get]
func NewListProductsHandler(svc ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		products, err := svc.List(r.Context(), q.Get("sort"), q.Get("order"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if products == nil {
			products = []models.ProductDB{}
		}

		writeJSON(w, http.StatusOK, ProductListResponse{
			Products: products,
			Count:    len(products),
		})
	}
}
