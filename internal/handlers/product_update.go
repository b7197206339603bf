package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// ProductUpdater defines the interface that the product update
// service must implement.
type ProductUpdater interface {
	Update(ctx context.Context, productID int64, in validation.ProductInput) error
}

// NewUpdateProductHandler returns an HTTP handler for editing a
// product. All fields are replaced; the creation timestamp is kept.
// @Summary Update product
// @Description Validates all fields and overwrites the product record.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product id"
// @Param productRequest body handlers.ProductRequest true "Product fields"
// @Success 200 {object} handlers.MessageResponse "Product updated"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation messages"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id} [put]
func NewUpdateProductHandler(svc ProductUpdater, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		if err := svc.Update(ctx, id, req.input()); err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			writeServiceError(w, err)
			return
		}

		message := "Product updated successfully!"
		sess := sessions.FromContext(ctx)
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: message})
	}
}
