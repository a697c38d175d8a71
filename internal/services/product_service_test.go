package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/logger"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func price(v float64) *float64 { return &v }

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, logger.Discard())

	expectedProducts := []models.Product{
		{ProductID: 1, Name: "Product A", Category: "a", Price: 10.0, Tags: []string{"x"}},
		{ProductID: 2, Name: "Product B", Category: "b", Price: 20.0, Tags: []string{}},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)

	// store fault surfaces unchanged
	storeDown := errors.New("connection refused")
	mockRepo.On("GetAll", ctx).Return(nil, storeDown).Once()
	_, err = service.GetAllProducts(ctx)
	assert.ErrorIs(t, err, storeDown)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockEvents, logger.Discard())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Product).ProductID = 7 }).
		Return(nil).Once()
	mockEvents.On("Publish", services.EventProductCreated, mock.MatchedBy(func(e services.ProductCreatedEvent) bool {
		return e.ProductID == 7 && e.Name == "Mug"
	})).Return(nil).Once()

	product, err := service.CreateProduct(ctx, services.ProductInput{
		Name:     "Mug",
		Category: "kitchen",
		Price:    price(0),
		Tags:     []string{"ceramic"},
		Reviews: []services.ReviewInput{
			{Rating: price(5), Comment: "Great", User: "sam"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ProductID)
	assert.Equal(t, 0.0, product.Price)
	require.Len(t, product.Reviews, 1)
	assert.Equal(t, 5.0, product.Reviews[0].Rating)
	assert.False(t, product.Reviews[0].CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProductDefaultsReviews(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, logger.Discard())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(ctx, services.ProductInput{
		Name: "Pen", Category: "office", Price: price(1.5), Tags: []string{},
	})
	require.NoError(t, err)
	assert.NotNil(t, product.Reviews)
	assert.Empty(t, product.Reviews)
}

func TestProductService_CreateProductRequiredFields(t *testing.T) {
	valid := func() services.ProductInput {
		return services.ProductInput{Name: "Pen", Category: "office", Price: price(1), Tags: []string{"ink"}}
	}

	tests := map[string]func(in *services.ProductInput){
		"missing name":     func(in *services.ProductInput) { in.Name = "" },
		"missing category": func(in *services.ProductInput) { in.Category = "" },
		"missing price":    func(in *services.ProductInput) { in.Price = nil },
		"missing tags":     func(in *services.ProductInput) { in.Tags = nil },
		"review without rating": func(in *services.ProductInput) {
			in.Reviews = []services.ReviewInput{{Comment: "ok", User: "sam"}}
		},
		"review without user": func(in *services.ProductInput) {
			in.Reviews = []services.ReviewInput{{Rating: price(3), Comment: "ok"}}
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo, nil, logger.Discard())
			in := valid()
			mutate(&in)

			_, err := service.CreateProduct(context.Background(), in)
			assert.Error(t, err)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
