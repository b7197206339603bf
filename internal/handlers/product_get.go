package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/services"
)

// ProductGetter defines the interface that the product lookup service
// must implement.
type ProductGetter interface {
	Get(ctx context.Context, productID int64) (*models.ProductDB, error)
}

// NewGetProductHandler returns an HTTP handler for fetching a single
// product, used to prefill the edit form.
// @Summary Get product
// @Description Returns one product by id.
// @Tags products
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} models.ProductDB "Product"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id} [get]
func NewGetProductHandler(svc ProductGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}
