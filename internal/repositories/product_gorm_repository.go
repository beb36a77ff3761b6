package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"productsvc/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves products with offset pagination and optional substring
// search over name and description. The match is case-insensitive on both
// PostgreSQL and SQLite, hence LOWER/LIKE instead of ILIKE. Results are
// ordered by product_id ascending so pagination is stable.
func (r *GORMProductRepository) List(ctx context.Context, skip, limit int, search string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	err := query.Order("product_id ASC").Offset(skip).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The ID and created_at are filled in by the
// store on commit. The write runs in its own transaction so a failure leaves
// no partial row behind.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the full state of an existing product. Select("*") forces
// zero values (stock back to 0, cleared description) to be written too;
// product_id and created_at are immutable and never touched. An explicit
// Updates is used rather than Save because Save re-creates a row that no
// longer exists instead of reporting it missing.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(product).Select("*").Omit("product_id", "created_at").Updates(product)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ProductID, err)
	}
	if affected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// Delete removes a product permanently. The model carries no gorm.DeletedAt,
// so this is a hard delete.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "product_id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if affected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
