package handlers

import (
	"context"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/models"
)

// ProductSearcher defines the interface that the product search
// service must implement.
type ProductSearcher interface {
	Search(ctx context.Context, keyword, category, minPrice, maxPrice string) ([]models.ProductDB, error)
}

// NewSearchProductsHandler returns an HTTP handler for the filtered
// product search. Criteria combine conjunctively; at least one must be
// present.
// @Summary Search products
// @Description Filters products by keyword, category and price bounds. All given criteria must hold at once.
// @Tags products
// @Produce json
// @Param keyword query string false "Matches name or description, case-insensitive"
// @Param category query string false "Exact category"
// @Param min_price query number false "Lower price bound, inclusive"
// @Param max_price query number false "Upper price bound, inclusive"
// @Success 200 {object} handlers.ProductListResponse "Matching products, name order"
// @Failure 400 {object} handlers.ValidationErrorResponse "No criteria given"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /products/search [get]
func NewSearchProductsHandler(svc ProductSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		products, err := svc.Search(
			r.Context(),
			q.Get("keyword"),
			q.Get("category"),
			q.Get("min_price"),
			q.Get("max_price"),
		)
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
