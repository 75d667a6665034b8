package models

import (
	"time"
)

// TransactionStatus represents the lifecycle status of a transaction.
// Transitions are unconstrained: an admin edit may move a transaction from
// any status to any other status.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusShipped   TransactionStatus = "SHIPPED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known values.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed,
		TransactionStatusShipped, TransactionStatusCompleted,
		TransactionStatusCancelled:
		return true
	}
	return false
}

// Transaction represents a sale. It holds non-owning references to the
// product, an optional variant, and an optional reseller (absence of a
// reseller means a direct sale). Records are created by the external
// order-placement path; this service reads, edits, deletes and exports them.
type Transaction struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	ProductID     uint              `json:"productId" gorm:"not null;index:idx_transactions_product"`
	Product       *Product          `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	VariantID     *uint             `json:"variantId,omitempty"`
	Variant       *ProductVariant   `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	ResellerID    *uint             `json:"resellerId,omitempty"`
	Reseller      *Reseller         `json:"reseller,omitempty" gorm:"foreignKey:ResellerID"`
	CustomerName  *string           `json:"customerName"`
	CustomerPhone *string           `json:"customerPhone"`
	Quantity      int               `json:"quantity" gorm:"not null"`
	TotalPrice    float64           `json:"totalPrice" gorm:"column:total_price;type:decimal(12,2);not null"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index:idx_transactions_status"`
	Notes         *string           `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time         `json:"createdAt" gorm:"index:idx_transactions_created,sort:desc"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Reseller is a referral/agent entity attributed to a transaction.
type Reseller struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateTransactionRequest is a partial update of the four admin-editable
// fields. Quantity, total price and product/variant/reseller linkage are
// immutable after creation.
type UpdateTransactionRequest struct {
	Status        *TransactionStatus `json:"status"`
	Notes         *string            `json:"notes"`
	CustomerName  *string            `json:"customerName"`
	CustomerPhone *string            `json:"customerPhone"`
}

// TransactionStats summarizes the transaction table for the admin dashboard.
// Revenue excludes CANCELLED transactions.
type TransactionStats struct {
	Total     int64   `json:"total"`
	Revenue   float64 `json:"revenue"`
	Pending   int64   `json:"pending"`
	Completed int64   `json:"completed"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TableName returns the table name for the Reseller model
func (Reseller) TableName() string {
	return "resellers"
}
