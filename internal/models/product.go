package models

import "time"

// Product represents a product in the inventory.
// UpdatedAt is a pointer and stays NULL until the first update; the service
// sets it explicitly, so GORM's automatic update tracking is disabled.
type Product struct {
	ProductID     uint       `json:"product_id" gorm:"primaryKey;autoIncrement"`
	Name          string     `json:"name" gorm:"type:varchar(255);not null;index"`
	Description   string     `json:"description" gorm:"type:text"`
	Price         float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int        `json:"stock_quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default pluralization.
func (Product) TableName() string {
	return "products"
}

// ProductCreate is the request body for creating a product.
// StockQuantity is a pointer so that an explicit 0 passes "required" while an
// omitted field still fails it. The column has a default of 0, but the
// contract keeps the field mandatory on create.
type ProductCreate struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity *int    `json:"stock_quantity" validate:"required,gte=0"`
}

// ProductUpdate is the request body for partial updates. A nil field means
// "leave unchanged". The tags use omitnil rather than omitempty so that an
// explicitly provided zero value (empty name, price 0) is still validated
// and rejected.
type ProductUpdate struct {
	Name          *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Description   *string  `json:"description" validate:"omitnil,max=2000"`
	Price         *float64 `json:"price" validate:"omitnil,gt=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitnil,gte=0"`
}
