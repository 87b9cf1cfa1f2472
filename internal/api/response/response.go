// Package response provides utilities for sending consistent HTTP responses.
// Every error body has the shape {"error": ..., "details": ...}.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ndewijer/Trade-Journal-Backend/internal/validation"
)

// ErrorResponse represents a structured error response returned by the API.
// Details is a string for most errors and a field-to-message map for validation errors.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Encoding errors are logged; the status has already been written by then.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
//
//	response.RespondError(w, http.StatusNotFound, apperrors.ErrEventNotFound.Error(), err.Error())
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// RespondValidationError sends 400 Bad Request for a failed request validation.
// A *validation.Error is reported per field; anything else as its message.
func RespondValidationError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
