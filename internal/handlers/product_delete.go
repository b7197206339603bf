package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// ProductDeleter defines the interface that the product deletion
// service must implement.
type ProductDeleter interface {
	Delete(ctx context.Context, productID int64) (string, error)
}

// NewDeleteProductHandler returns an HTTP handler for removing a
// product. Deletion is reachable only through the DELETE method, never
// through a GET.
// @Summary Delete product
// @Description Removes the product record and reports its name.
// @Tags products
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} handlers.MessageResponse "Product deleted"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id} [delete]
func NewDeleteProductHandler(svc ProductDeleter, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}

		ctx := r.Context()
		name, err := svc.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			writeServiceError(w, err)
			return
		}

		message := fmt.Sprintf("Product %q deleted successfully!", name)
		sess := sessions.FromContext(ctx)
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: message})
	}
}
