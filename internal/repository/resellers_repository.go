package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-admin-service/internal/models"
)

// ResellersRepositoryInterface defines reseller directory operations.
type ResellersRepositoryInterface interface {
	ListResellers(ctx context.Context) ([]models.Reseller, error)
	CountResellers(ctx context.Context) (int64, error)
}

type ResellersRepository struct {
	db *gorm.DB
}

var _ ResellersRepositoryInterface = (*ResellersRepository)(nil)

func NewResellersRepository(db *gorm.DB) *ResellersRepository {
	return &ResellersRepository{db: db}
}

// ListResellers returns the reseller directory ordered by name.
func (r *ResellersRepository) ListResellers(ctx context.Context) ([]models.Reseller, error) {
	var resellers []models.Reseller
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&resellers).Error; err != nil {
		return nil, err
	}
	return resellers, nil
}

// CountResellers returns the number of resellers.
func (r *ResellersRepository) CountResellers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reseller{}).Count(&count).Error
	return count, err
}
