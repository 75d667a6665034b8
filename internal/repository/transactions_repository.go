package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storefront-admin-service/internal/models"
)

// TransactionsRepositoryInterface defines transaction persistence operations.
type TransactionsRepositoryInterface interface {
	ListTransactions(ctx context.Context, status models.TransactionStatus, search string) ([]models.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id uint, req *models.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	GetTransactionStats(ctx context.Context) (*models.TransactionStats, error)
}

type TransactionsRepository struct {
	db *gorm.DB
}

var _ TransactionsRepositoryInterface = (*TransactionsRepository)(nil)

func NewTransactionsRepository(db *gorm.DB) *TransactionsRepository {
	return &TransactionsRepository{db: db}
}

func (r *TransactionsRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Preload("Product").
		Preload("Variant").
		Preload("Reseller")
}

// ListTransactions returns transactions newest first, optionally filtered by
// status and by a free-text search over product name, customer name and the
// transaction ID rendered as text.
func (r *TransactionsRepository) ListTransactions(ctx context.Context, status models.TransactionStatus, search string) ([]models.Transaction, error) {
	query := r.withRelations(ctx)

	if status != "" {
		query = query.Where("transactions.status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN products ON products.id = transactions.product_id").
			Where("products.name ILIKE ? OR transactions.customer_name ILIKE ? OR CAST(transactions.id AS TEXT) LIKE ?",
				pattern, pattern, pattern)
	}

	var transactions []models.Transaction
	if err := query.Order("transactions.created_at DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListAllTransactions returns the full table for export, ignoring any active
// status filter, newest first.
func (r *TransactionsRepository) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.withRelations(ctx).Order("transactions.created_at DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction with its relations.
func (r *TransactionsRepository) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.withRelations(ctx).First(&transaction, "transactions.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update of the four editable fields.
// Omitted fields are left untouched.
func (r *TransactionsRepository) UpdateTransaction(ctx context.Context, id uint, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	var existing models.Transaction
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}

	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetTransactionByID(ctx, id)
}

// DeleteTransaction removes the record.
func (r *TransactionsRepository) DeleteTransaction(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetTransactionStats aggregates counts and revenue in SQL. Revenue excludes
// CANCELLED transactions.
func (r *TransactionsRepository) GetTransactionStats(ctx context.Context) (*models.TransactionStats, error) {
	stats := &models.TransactionStats{}
	db := r.db.WithContext(ctx).Model(&models.Transaction{})

	if err := db.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status <> ?", models.TransactionStatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", models.TransactionStatusPending).
		Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", models.TransactionStatusCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
