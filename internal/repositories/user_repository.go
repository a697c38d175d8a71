package repositories

import (
	"context"

	"storefront/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts a new user. A second user with the same email fails with
	// ErrDuplicateKey.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail returns ErrNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
