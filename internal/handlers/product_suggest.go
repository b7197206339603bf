package handlers

import (
	"context"
	"net/http"
)

// NameSuggester defines the interface that the autocomplete service
// must implement.
type NameSuggester interface {
	Autocomplete(ctx context.Context, term string) ([]string, error)
}

// NewSuggestNamesHandler returns an HTTP handler for product name
// autocomplete. Terms shorter than two characters return an empty
// list without touching storage.
// @Summary Suggest product names
// @Description Returns up to ten distinct product names matching the partial term.
// @Tags products
// @Produce json
// @Param term query string true "Partial name, at least 2 characters"
// @Success 200 {array} string "Suggestions"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /products/suggest [get]
func NewSuggestNamesHandler(svc NameSuggester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.Autocomplete(r.Context(), r.URL.Query().Get("term"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}
}
