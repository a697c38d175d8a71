package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by ProductID.
	GetAll(ctx context.Context) ([]models.Product, error)
	// Create inserts product and sets its store-assigned ProductID.
	Create(ctx context.Context, product *models.Product) error
}
