package services

import (
	"context"
	"log"
	"time"

	"productsvc/internal/models"
	"productsvc/internal/repositories"
	"productsvc/pkg/rabbitmq"
)

// EventPublisher publishes product lifecycle events. Satisfied by
// *rabbitmq.Client; a nil publisher disables event publication.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves products with pagination and optional search.
func (s *ProductService) ListProducts(ctx context.Context, skip, limit int, search string) ([]models.Product, error) {
	return s.repo.List(ctx, skip, limit, search)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct persists a new product from a validated create payload and
// returns it with the store-assigned ID and creation timestamp.
func (s *ProductService) CreateProduct(ctx context.Context, payload *models.ProductCreate) (*models.Product, error) {
	product := &models.Product{
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         payload.Price,
		StockQuantity: *payload.StockQuantity,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies a partial update: only non-nil payload fields change,
// everything else keeps its stored value. updated_at is refreshed on every
// successful update and is nil until the first one.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, payload *models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.StockQuantity != nil {
		product.StockQuantity = *payload.StockQuantity
	}

	now := time.Now().UTC()
	product.UpdatedAt = &now

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes a product permanently.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ProductID); err != nil {
		return err
	}

	s.publish(rabbitmq.EventProductDeleted, product)
	return nil
}

// publish emits a product event after a successful write. Publish failures
// are logged and never fail the request.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"product_id":     product.ProductID,
		"name":           product.Name,
		"price":          product.Price,
		"stock_quantity": product.StockQuantity,
	}
	if err := s.publisher.PublishProductEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", event, product.ProductID, err)
	}
}
