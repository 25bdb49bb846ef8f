package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// InventoryStatus is what the health check reports on.
type InventoryStatus interface {
	Loading() bool
	CachedCount() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	status InventoryStatus
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(status InventoryStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		status: status,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	Loading        bool      `json:"loading"`
	CachedProducts int       `json:"cached_products"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		Version:        "1.0.0",
		Loading:        h.status.Loading(),
		CachedProducts: h.status.CachedCount(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
