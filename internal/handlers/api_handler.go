package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/inventory-web/internal/inventory"
	"github.com/Lixing-Zhang/inventory-web/internal/models"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
)

// APIHandler exposes the cached inventory as JSON. It never contacts the
// upstream API.
type APIHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewAPIHandler creates a new JSON handler
func NewAPIHandler(service *service.ProductService, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		service: service,
		logger:  logger,
	}
}

// ProductResponse is a cached product in the JSON view.
type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	Location   string `json:"location"`
	StockLevel string `json:"stock_level"`
}

// StatsResponse summarizes the full cached list.
type StatsResponse struct {
	Count      int    `json:"count"`
	TotalValue string `json:"total_value"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Type:       p.Type,
		Quantity:   p.Quantity,
		Price:      p.Price.StringFixed(2),
		Location:   p.Location,
		StockLevel: string(inventory.TierOf(p.Quantity)),
	}
}

// ListProducts handles GET /api/products
// Accepts the same q and type parameters as the search page.
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.logger.Error("failed to list cached products", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, newProductResponse(p))
	}
	WriteJSON(w, http.StatusOK, resp, h.logger)
}

// Stats handles GET /api/stats
func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, StatsResponse{
		Count:      stats.Count,
		TotalValue: stats.TotalValueText(),
	}, h.logger)
}
