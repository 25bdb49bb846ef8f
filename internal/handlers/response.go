package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes data as the response body. Responses are snapshots of the
// in-memory store and must not be cached by clients.
func WriteJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "status", status, "error", err)
	}
}

// WriteError writes an error response in JSON format, tagged with the request
// id so it can be matched against the access log.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{
		Error:     message,
		RequestID: chimiddleware.GetReqID(r.Context()),
	}, logger)
}
