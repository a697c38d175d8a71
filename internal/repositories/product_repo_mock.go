package repositories

import (
	"context"
	"sync"
	"time"

	"storefront/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products []models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make([]models.Product, 0),
		nextID:   1,
	}
}

// GetAll returns all products in insertion order, which is also ID order.
func (r *MockProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ProductID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now
	r.products = append(r.products, *product)
	return nil
}
