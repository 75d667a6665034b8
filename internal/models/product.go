package models

import (
	"time"
)

// ProductStatus represents the visibility status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Valid reports whether the status is one of the known values.
func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product represents a catalog product. Stock is the base stock and is only
// meaningful when the product has no variants; with variants each variant
// carries its own stock (documented convention, not enforced).
type Product struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Description string           `json:"description" gorm:"type:text"`
	IconURL     string           `json:"iconUrl" gorm:"column:icon_url;type:varchar(500)"`
	Price       float64          `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int              `json:"stock" gorm:"not null;default:0"`
	Status      ProductStatus    `json:"status" gorm:"type:varchar(10);not null;default:'ACTIVE';index:idx_products_status"`
	EnableNotes bool             `json:"enableNotes" gorm:"column:enable_notes;default:true"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductVariant is a named attribute/value pair (e.g. Size=XL) with its own
// stock count, owned by exactly one product.
type ProductVariant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;index:idx_product_variants_product"`
	Name      string    `json:"name" gorm:"not null"`
	Value     string    `json:"value" gorm:"not null"`
	Stock     int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VariantInput is a variant as submitted by the admin UI. The collection is
// always submitted wholesale: the stored variant set is replaced, not merged.
type VariantInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
	Stock int    `json:"stock"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	IconURL     string         `json:"iconUrl"`
	Price       *float64       `json:"price" binding:"required"`
	Stock       *int           `json:"stock" binding:"required"`
	Status      ProductStatus  `json:"status"`
	EnableNotes *bool          `json:"enableNotes"`
	Variants    []VariantInput `json:"variants" binding:"omitempty,dive"`
}

// UpdateProductRequest replaces all scalar fields and the entire variant
// collection. The admin form always submits the full product state.
type UpdateProductRequest = CreateProductRequest

// ReplaceVariantsRequest represents the stock-only variant editor submission
type ReplaceVariantsRequest struct {
	Variants []VariantInput `json:"variants" binding:"required,dive"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}
