package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"productsvc/internal/models"
	"productsvc/internal/services"
	"productsvc/pkg/rabbitmq"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, skip, limit int, search string) ([]models.Product, error) {
	args := m.Called(ctx, skip, limit, search)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ProductID: 1, Name: "Product A", Price: 10.0, StockQuantity: 100},
		{ProductID: 2, Name: "Product B", Price: 20.0, StockQuantity: 50},
	}

	mockRepo.On("List", mock.Anything, 0, 100, "").Return(expectedProducts, nil).Once()

	products, err := service.ListProducts(context.Background(), 0, 100, "")

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ProductID: 1, Name: "Product A", Price: 10.0, StockQuantity: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.ErrProductNotFound).Once()
	product, err = service.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	payload := &models.ProductCreate{
		Name:          "New Product",
		Description:   "A new product",
		Price:         50.0,
		StockQuantity: intPtr(20),
	}

	// Simulate the store assigning an ID and creation timestamp on insert.
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Product)
			p.ProductID = 1
			p.CreatedAt = time.Now().UTC()
		}).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), payload)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), product.ProductID)
	assert.Equal(t, "New Product", product.Name)
	assert.Equal(t, 50.0, product.Price)
	assert.Equal(t, 20, product.StockQuantity)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Nil(t, product.UpdatedAt)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Return(fmt.Errorf("database error")).Once()
	product, err = service.CreateProduct(context.Background(), payload)
	assert.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PartialMerge(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{
		ProductID:     1,
		Name:          "Apple Laptop",
		Description:   "High performance laptop",
		Price:         1000.0,
		StockQuantity: 10,
		CreatedAt:     time.Now().UTC().Add(-time.Hour),
	}

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		// Only the name changes; everything else keeps its stored value and
		// updated_at is refreshed.
		return p.ProductID == 1 &&
			p.Name == "Apple Laptop Pro" &&
			p.Description == "High performance laptop" &&
			p.Price == 1000.0 &&
			p.StockQuantity == 10 &&
			p.UpdatedAt != nil
	})).Return(nil).Once()

	product, err := service.UpdateProduct(context.Background(), 1, &models.ProductUpdate{
		Name: strPtr("Apple Laptop Pro"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Apple Laptop Pro", product.Name)
	assert.Equal(t, 1000.0, product.Price)
	assert.Equal(t, 10, product.StockQuantity)
	assert.NotNil(t, product.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_AllFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ProductID: 2, Name: "Old", Description: "old", Price: 1.0, StockQuantity: 1}

	mockRepo.On("GetByID", mock.Anything, uint(2)).Return(stored, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "New" && p.Description == "new" && p.Price == 2.5 && p.StockQuantity == 7
	})).Return(nil).Once()

	product, err := service.UpdateProduct(context.Background(), 2, &models.ProductUpdate{
		Name:          strPtr("New"),
		Description:   strPtr("new"),
		Price:         floatPtr(2.5),
		StockQuantity: intPtr(7),
	})
	assert.NoError(t, err)
	assert.Equal(t, "New", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.ErrProductNotFound).Once()

	product, err := service.UpdateProduct(context.Background(), 99, &models.ProductUpdate{Name: strPtr("X")})
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ProductID: 1, Name: "Product A", Price: 10.0, StockQuantity: 100}

	// Test successful deletion
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	err := service.DeleteProduct(context.Background(), 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion of a missing product
	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.ErrProductNotFound).Once()
	err = service.DeleteProduct(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_PublishesEvents(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ProductID = 1
		}).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", rabbitmq.EventProductCreated, mock.Anything).Return(nil).Once()

	_, err := service.CreateProduct(context.Background(), &models.ProductCreate{
		Name: "Evented", Price: 5.0, StockQuantity: intPtr(1),
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	stored := &models.Product{ProductID: 3, Name: "Evented", Price: 5.0, StockQuantity: 1}

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(stored, nil).Once()
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", rabbitmq.EventProductDeleted, mock.Anything).
		Return(fmt.Errorf("broker unavailable")).Once()

	err := service.DeleteProduct(context.Background(), 3)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
