package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for the cached product list
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Replace(ctx context.Context, products []models.Product) error
	Len() int
}

// InMemoryProductRepository keeps the products of the last list fetch in the
// order the API returned them. It is a cache, not a source of truth: every
// successful fetch discards the previous contents.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates an empty product repository
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// ExampleProducts is the fixed data set shown when the API cannot be reached.
func ExampleProducts() []models.Product {
	return []models.Product{
		{
			ID:       "ej-1",
			Name:     "Laptop HP EliteBook",
			Type:     "Electrónica",
			Quantity: 3,
			Price:    decimal.RequireFromString("1299.99"),
			Location: "Estante A",
		},
		{
			ID:       "ej-2",
			Name:     "Camiseta Casual",
			Type:     "Ropa",
			Quantity: 15,
			Price:    decimal.RequireFromString("24.99"),
			Location: "Mostrador",
		},
	}
}

// GetAll returns a copy of all products in store order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			p := product
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Replace discards the current contents and stores products in the given order.
// A nil slice empties the store.
func (r *InMemoryProductRepository) Replace(ctx context.Context, products []models.Product) error {
	next := make([]models.Product, len(products))
	copy(next, products)

	r.mu.Lock()
	r.products = next
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored products
func (r *InMemoryProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}
