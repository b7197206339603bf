package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// ProductCreator defines the interface that the product creation
// service must implement.
type ProductCreator interface {
	Create(ctx context.Context, in validation.ProductInput) (int64, error)
}

// CreateProductResponse represents a successful creation
// swagger:model CreateProductResponse
type CreateProductResponse struct {
	// Id of the new product
	// example: 42
	ProductID int64 `json:"id"`

	// Success message
	// example: Product added successfully!
	Message string `json:"message"`
}

// NewCreateProductHandler returns an HTTP handler for adding a
// product. Nothing is written when any field fails validation.
// @Summary Create product
// @Description Validates all fields and inserts a new product record.
// @Tags products
// @Accept json
// @Produce json
// @Param productRequest body handlers.ProductRequest true "Product fields"
// @Success 201 {object} handlers.CreateProductResponse "Product created"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation messages"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /products [post]
func NewCreateProductHandler(svc ProductCreator, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		productID, err := svc.Create(ctx, req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		message := "Product added successfully!"
		sess := sessions.FromContext(ctx)
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		writeJSON(w, http.StatusCreated, CreateProductResponse{
			ProductID: productID,
			Message:   message,
		})
	}
}
