package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/inventory-web/internal/middleware"
)

// RouterConfig wires handlers into the HTTP surface.
type RouterConfig struct {
	Products       *ProductHandler
	API            *APIHandler
	Health         *HealthHandler
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter registers routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", cfg.Health.ServeHTTP)

	// Pages
	r.Get("/", cfg.Products.Index)
	r.Get("/search", cfg.Products.Search)
	r.Route("/products", func(r chi.Router) {
		r.Post("/", cfg.Products.Save)
		r.Get("/table", cfg.Products.Table)
		r.Get("/{productId}/edit", cfg.Products.Edit)
		r.Get("/{productId}/delete", cfg.Products.ConfirmDelete)
		r.Post("/{productId}/delete", cfg.Products.Delete)
	})

	// JSON views of the cache
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Get("/products", cfg.API.ListProducts)
		r.Get("/stats", cfg.API.Stats)
	})

	return r
}
