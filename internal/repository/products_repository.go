package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront-admin-service/internal/models"
)

// ErrProductReferenced is returned when a delete is rejected because
// transactions still reference the product.
var ErrProductReferenced = errors.New("product is referenced by existing transactions")

// Cache TTL for product listings. Lists change on every admin mutation, so
// the TTL is short and every mutation invalidates both scopes.
const productListCacheTTL = 2 * time.Minute

// ProductsRepositoryInterface defines catalog persistence operations.
type ProductsRepositoryInterface interface {
	ListProducts(ctx context.Context, adminScope bool) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uint, product *models.Product, variants []models.ProductVariant) (*models.Product, error)
	ReplaceVariants(ctx context.Context, productID uint, variants []models.ProductVariant) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	CountProducts(ctx context.Context) (int64, error)
	CountProductsByStatus(ctx context.Context, status models.ProductStatus) (int64, error)
}

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ ProductsRepositoryInterface = (*ProductsRepository)(nil)

func NewProductsRepository(db *gorm.DB, redisClient *redis.Client) *ProductsRepository {
	return &ProductsRepository{
		db:    db,
		redis: redisClient,
	}
}

func listCacheKey(adminScope bool) string {
	return fmt.Sprintf("products:list:%v", adminScope)
}

// invalidateListCaches drops both list cache scopes after any mutation.
func (r *ProductsRepository) invalidateListCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, listCacheKey(true), listCacheKey(false)).Err()
}

// ListProducts returns products with their variants, newest first. The admin
// scope returns every status; the public scope returns ACTIVE only.
func (r *ProductsRepository) ListProducts(ctx context.Context, adminScope bool) ([]models.Product, error) {
	cacheKey := listCacheKey(adminScope)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Variants")
	if !adminScope {
		query = query.Where("status = ?", models.ProductStatusActive)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			r.redis.Set(ctx, cacheKey, data, productListCacheTTL)
		}
	}

	return products, nil
}

// GetProductByID retrieves a product with its variants.
func (r *ProductsRepository) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Variants").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct persists a product together with its variant collection in a
// single database transaction.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	if err == nil {
		r.invalidateListCaches(ctx)
	}
	return err
}

// UpdateProduct replaces the product's scalar fields and its entire variant
// collection (delete-all-then-insert, not a diff). Returns the stored state.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, product *models.Product, variants []models.ProductVariant) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         product.Name,
			"description":  product.Description,
			"icon_url":     product.IconURL,
			"price":        product.Price,
			"stock":        product.Stock,
			"status":       product.Status,
			"enable_notes": product.EnableNotes,
			"updated_at":   time.Now(),
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		return replaceVariantsTx(tx, id, variants)
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListCaches(ctx)
	return r.GetProductByID(ctx, id)
}

// ReplaceVariants overwrites the product's variant collection in one
// operation. Used by the stock-only editor; semantics match the full edit.
func (r *ProductsRepository) ReplaceVariants(ctx context.Context, productID uint, variants []models.ProductVariant) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, productID).Error; err != nil {
			return err
		}
		return replaceVariantsTx(tx, productID, variants)
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListCaches(ctx)
	return r.GetProductByID(ctx, productID)
}

func replaceVariantsTx(tx *gorm.DB, productID uint, variants []models.ProductVariant) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ID = 0
		variants[i].ProductID = productID
	}
	return tx.Create(&variants).Error
}

// DeleteProduct removes the product and its variants. Deletion is restricted
// while transactions still reference the product.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.Transaction{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductReferenced
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err == nil {
		r.invalidateListCaches(ctx)
	}
	return err
}

// CountProducts returns the total number of products.
func (r *ProductsRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// CountProductsByStatus returns the number of products with the given status.
func (r *ProductsRepository) CountProductsByStatus(ctx context.Context, status models.ProductStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
