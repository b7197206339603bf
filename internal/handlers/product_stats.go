package handlers

import (
	"context"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/models"
)

// StatsReader defines the interface that the dashboard service must
// implement.
type StatsReader interface {
	Stats(ctx context.Context) (*models.ProductStats, error)
}

// NewProductStatsHandler returns an HTTP handler for the dashboard
// aggregates.
// @Summary Inventory statistics
// @Description Returns the product count, total inventory value, number of categories in use and the low stock count.
// @Tags products
// @Produce json
// @Success 200 {object} models.ProductStats "Aggregates"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /products/stats [get]
func NewProductStatsHandler(svc StatsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
