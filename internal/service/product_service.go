package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Lixing-Zhang/inventory-web/internal/inventory"
	"github.com/Lixing-Zhang/inventory-web/internal/inventoryapi"
	"github.com/Lixing-Zhang/inventory-web/internal/models"
	"github.com/Lixing-Zhang/inventory-web/internal/notify"
	"github.com/Lixing-Zhang/inventory-web/internal/repository"
)

// InventoryAPI is the remote collaborator the service drives.
type InventoryAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in models.ProductInput) (*inventoryapi.Response, error)
	Update(ctx context.Context, id string, in models.ProductInput) (*inventoryapi.Response, error)
	Delete(ctx context.Context, id string) (*inventoryapi.Response, error)
}

// Outcome is the user-visible result of an operation.
type Outcome struct {
	Notice notify.Notice
	OK     bool
	// Demo is set when the store holds the fallback example data.
	Demo bool
}

// ProductService handles inventory operations against the API and keeps the
// cached product list current.
type ProductService struct {
	api      InventoryAPI
	repo     repository.ProductRepository
	logger   *slog.Logger
	inflight atomic.Int32
}

// NewProductService creates a new product service
func NewProductService(api InventoryAPI, repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		api:    api,
		repo:   repo,
		logger: logger,
	}
}

// Loading reports whether any API call is in flight.
func (s *ProductService) Loading() bool {
	return s.inflight.Load() > 0
}

func (s *ProductService) begin() func() {
	s.inflight.Add(1)
	return func() { s.inflight.Add(-1) }
}

// Load fetches the product list and replaces the cache with it. On a
// non-success status the cache is left alone. When the API cannot be reached
// the cache is filled with the example data set so the page stays usable.
func (s *ProductService) Load(ctx context.Context) Outcome {
	defer s.begin()()

	products, err := s.api.List(ctx)
	if err != nil {
		var statusErr *inventoryapi.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Warn("product list not ready", "status", statusErr.Status, "message", statusErr.Message)
			return Outcome{
				Notice: notify.Warning("⚠️ Advertencia", notify.MessageOr(statusErr.Message, "Error al cargar productos")),
			}
		}

		s.logger.Error("failed to load products, showing example data", "error", err)
		if err := s.repo.Replace(ctx, repository.ExampleProducts()); err != nil {
			s.logger.Error("failed to store example data", "error", err)
		}
		return Outcome{
			Notice: notify.Danger("❌ Error de conexión", "No se pudo conectar con la API"),
			Demo:   true,
		}
	}

	if err := s.repo.Replace(ctx, products); err != nil {
		s.logger.Error("failed to store products", "error", err)
		return Outcome{Notice: notify.Danger("❌ Error", "No se pudo actualizar el inventario")}
	}

	s.logger.Debug("products loaded", "count", len(products))
	return Outcome{
		Notice: notify.Success("✅ Inventario actualizado", fmt.Sprintf("Se cargaron %d productos", len(products))),
		OK:     true,
	}
}

// Submit creates the product when the form has no ID and updates it
// otherwise. The cache is not touched; callers reload the list on success.
func (s *ProductService) Submit(ctx context.Context, form Form) Outcome {
	in, err := form.Input()
	if err != nil {
		s.logger.Info("rejected product form", "mode", form.Mode().String(), "error", err)
		return Outcome{Notice: notify.Danger("❌ Error", formMessage(err))}
	}

	defer s.begin()()

	var resp *inventoryapi.Response
	if form.Editing() {
		resp, err = s.api.Update(ctx, form.ID, in)
	} else {
		resp, err = s.api.Create(ctx, in)
	}
	if err != nil {
		s.logger.Warn("product save failed", "mode", form.Mode().String(), "id", form.ID, "error", err)
		return failure(err, "Error en la operación", "No se pudo completar la operación")
	}

	return Outcome{
		Notice: notify.Success("✅ Éxito", notify.MessageOr(resp.Message, "Operación completada")),
		OK:     true,
	}
}

// Delete removes a product through the API. The cache is not touched.
func (s *ProductService) Delete(ctx context.Context, id string) Outcome {
	defer s.begin()()

	resp, err := s.api.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("product delete failed", "id", id, "error", err)
		return failure(err, "Error al eliminar", "No se pudo eliminar el producto")
	}

	return Outcome{
		Notice: notify.Success("✅ Eliminado", notify.MessageOr(resp.Message, "Producto eliminado")),
		OK:     true,
	}
}

func failure(err error, statusDefault, transportMessage string) Outcome {
	var statusErr *inventoryapi.StatusError
	if errors.As(err, &statusErr) {
		return Outcome{Notice: notify.Danger("❌ Error", notify.MessageOr(statusErr.Message, statusDefault))}
	}
	return Outcome{Notice: notify.Danger("❌ Error de conexión", transportMessage)}
}

// ListProducts returns the cached products in API order
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProduct returns a cached product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CachedCount is the number of products currently cached.
func (s *ProductService) CachedCount() int {
	return s.repo.Len()
}

// Search filters the cached products without contacting the API.
func (s *ProductService) Search(ctx context.Context, c inventory.Criteria) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.Filter(products, c), nil
}

// Stats summarizes the full cached list, ignoring any filter.
func (s *ProductService) Stats(ctx context.Context) (inventory.Stats, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return inventory.Stats{}, err
	}
	return inventory.Summarize(products), nil
}
