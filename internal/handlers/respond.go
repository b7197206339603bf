package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// ErrorResponse is the single-message error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Product not found
	Error string `json:"error"`
}

// ValidationErrorResponse carries the ordered field-level messages
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Ordered validation messages
	// example: ["Product name is required","Price must be a valid positive number"]
	Errors []string `json:"errors"`
}

// MessageResponse is a plain success body
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// example: Product updated successfully!
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
}

// writeServiceError renders validation errors as a 400 list and
// everything else as a generic 500. Raw datastore errors never reach
// the client.
func writeServiceError(w http.ResponseWriter, err error) {
	if verrs, ok := validation.AsErrors(err); ok {
		writeValidationErrors(w, verrs)
		return
	}
	logger.Log.Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
