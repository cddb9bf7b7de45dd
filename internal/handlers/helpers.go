package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/schemas"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the standard error body, carrying the request trace ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, detail string) error {
	return WriteJSON(w, statusCode, schemas.ErrorResponse{
		Detail:  detail,
		TraceID: common.TraceIDFromContext(r.Context()),
	})
}

// DecodeJSON parses the request body into dst. A syntactically invalid body
// is reported the same way as a semantically invalid one.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
