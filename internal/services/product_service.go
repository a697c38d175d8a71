package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductInput is the body accepted when creating a product. Pointers mark
// numbers that are required but may legitimately be zero.
type ProductInput struct {
	Name     string        `json:"name" validate:"required"`
	Category string        `json:"category" validate:"required"`
	Price    *float64      `json:"price" validate:"required"`
	Tags     []string      `json:"tags" validate:"required"`
	Reviews  []ReviewInput `json:"reviews" validate:"dive"`
}

// ReviewInput is one review inside a ProductInput.
type ReviewInput struct {
	Rating  *float64 `json:"rating" validate:"required"`
	Comment string   `json:"comment" validate:"required"`
	User    string   `json:"user" validate:"required"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	log      logrus.FieldLogger
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log logrus.FieldLogger) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetAllProducts retrieves all products ordered by product ID.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// CreateProduct checks required fields, then stores the product with a
// store-assigned ID. Reviews default to an empty list.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	now := time.Now().UTC()
	reviews := make([]models.Review, 0, len(in.Reviews))
	for _, r := range in.Reviews {
		reviews = append(reviews, models.Review{
			Rating:    *r.Rating,
			Comment:   r.Comment,
			User:      r.User,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	product := &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Price:    *in.Price,
		Tags:     in.Tags,
		Reviews:  reviews,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	publish(s.events, s.log, EventProductCreated, ProductCreatedEvent{
		ProductID: product.ProductID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		CreatedAt: product.CreatedAt,
	})
	return product, nil
}
