//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront-admin-service/internal/models"
)

// RepositoryTestSuite runs the repositories against a real PostgreSQL
// database. Run with: go test -tags=integration ./internal/repository/
type RepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	products     *ProductsRepository
	transactions *TransactionsRepository
	ctx          context.Context
}

func (s *RepositoryTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=storefront_admin_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		s.T().Fatalf("Failed to connect to database: %v", err)
	}
	s.db = db

	err = s.db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Reseller{},
		&models.Transaction{},
	)
	if err != nil {
		s.T().Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is nil: caching is bypassed and reads hit the database.
	s.products = NewProductsRepository(db, nil)
	s.transactions = NewTransactionsRepository(db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM transactions")
	s.db.Exec("DELETE FROM product_variants")
	s.db.Exec("DELETE FROM products")
	s.db.Exec("DELETE FROM resellers")
}

func (s *RepositoryTestSuite) createProduct(variants ...models.ProductVariant) *models.Product {
	product := &models.Product{
		Name:     "Coffee",
		Price:    25000,
		Stock:    10,
		Status:   models.ProductStatusActive,
		Variants: variants,
	}
	s.Require().NoError(s.products.CreateProduct(s.ctx, product))
	return product
}

func (s *RepositoryTestSuite) createTransaction(productID uint, status models.TransactionStatus, totalPrice float64) *models.Transaction {
	tx := &models.Transaction{
		ProductID:  productID,
		Quantity:   1,
		TotalPrice: totalPrice,
		Status:     status,
	}
	s.Require().NoError(s.db.Create(tx).Error)
	return tx
}

// Updating with M variants must leave exactly M stored: the collection is
// replaced, not merged with the previous one.
func (s *RepositoryTestSuite) TestUpdateProductReplacesVariantCollection() {
	product := s.createProduct(
		models.ProductVariant{Name: "Size", Value: "S", Stock: 1},
		models.ProductVariant{Name: "Size", Value: "M", Stock: 2},
		models.ProductVariant{Name: "Size", Value: "L", Stock: 3},
	)

	updated, err := s.products.UpdateProduct(s.ctx, product.ID, &models.Product{
		Name:   "Coffee",
		Price:  26000,
		Stock:  10,
		Status: models.ProductStatusActive,
	}, []models.ProductVariant{
		{Name: "Size", Value: "M", Stock: 20},
		{Name: "Size", Value: "XL", Stock: 5},
	})
	s.Require().NoError(err)
	s.Require().Len(updated.Variants, 2)

	// Nothing from the old collection survives alongside the new one.
	var count int64
	s.Require().NoError(s.db.Model(&models.ProductVariant{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	s.Equal(int64(2), count)

	values := []string{updated.Variants[0].Value, updated.Variants[1].Value}
	s.ElementsMatch([]string{"M", "XL"}, values)
}

func (s *RepositoryTestSuite) TestReplaceVariantsWithEmptyListClearsAll() {
	product := s.createProduct(
		models.ProductVariant{Name: "Size", Value: "S", Stock: 1},
		models.ProductVariant{Name: "Size", Value: "M", Stock: 2},
	)

	updated, err := s.products.ReplaceVariants(s.ctx, product.ID, nil)
	s.Require().NoError(err)
	s.Empty(updated.Variants)

	var count int64
	s.Require().NoError(s.db.Model(&models.ProductVariant{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	s.Equal(int64(0), count)
}

func (s *RepositoryTestSuite) TestDeleteProductRestrictedWhileReferenced() {
	product := s.createProduct()
	tx := s.createTransaction(product.ID, models.TransactionStatusPending, 25000)

	err := s.products.DeleteProduct(s.ctx, product.ID)
	s.Require().ErrorIs(err, ErrProductReferenced)

	// The product must survive a rejected delete.
	_, err = s.products.GetProductByID(s.ctx, product.ID)
	s.Require().NoError(err)

	// Once the reference is gone the delete goes through.
	s.Require().NoError(s.transactions.DeleteTransaction(s.ctx, tx.ID))
	s.Require().NoError(s.products.DeleteProduct(s.ctx, product.ID))

	_, err = s.products.GetProductByID(s.ctx, product.ID)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestDeleteProductRemovesVariants() {
	product := s.createProduct(
		models.ProductVariant{Name: "Size", Value: "S", Stock: 1},
	)

	s.Require().NoError(s.products.DeleteProduct(s.ctx, product.ID))

	var count int64
	s.Require().NoError(s.db.Model(&models.ProductVariant{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	s.Equal(int64(0), count)
}

// Revenue sums totalPrice over every status except CANCELLED.
func (s *RepositoryTestSuite) TestTransactionStatsExcludeCancelledRevenue() {
	product := s.createProduct()
	s.createTransaction(product.ID, models.TransactionStatusPending, 10000)
	s.createTransaction(product.ID, models.TransactionStatusCompleted, 20000)
	s.createTransaction(product.ID, models.TransactionStatusShipped, 5000)
	s.createTransaction(product.ID, models.TransactionStatusCancelled, 99999)

	stats, err := s.transactions.GetTransactionStats(s.ctx)
	s.Require().NoError(err)

	s.Equal(int64(4), stats.Total)
	s.InDelta(35000, stats.Revenue, 0.001)
	s.Equal(int64(1), stats.Pending)
	s.Equal(int64(1), stats.Completed)
}

func (s *RepositoryTestSuite) TestTransactionStatsEmptyTable() {
	stats, err := s.transactions.GetTransactionStats(s.ctx)
	s.Require().NoError(err)

	s.Equal(int64(0), stats.Total)
	s.InDelta(0, stats.Revenue, 0.001)
}

func (s *RepositoryTestSuite) TestListProductsPublicScopeFiltersActive() {
	s.createProduct()
	inactive := &models.Product{
		Name:   "Retired",
		Price:  1000,
		Status: models.ProductStatusInactive,
	}
	s.Require().NoError(s.products.CreateProduct(s.ctx, inactive))

	public, err := s.products.ListProducts(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(public, 1)
	s.Equal("Coffee", public[0].Name)

	admin, err := s.products.ListProducts(s.ctx, true)
	s.Require().NoError(err)
	s.Len(admin, 2)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
