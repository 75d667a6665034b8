package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/sessions"
)

type mockProductsRepo struct {
	mock.Mock
}

func (m *mockProductsRepo) ListProducts(ctx context.Context, adminScope bool) ([]models.Product, error) {
	args := m.Called(ctx, adminScope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductsRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductsRepo) UpdateProduct(ctx context.Context, id uint, product *models.Product, variants []models.ProductVariant) (*models.Product, error) {
	args := m.Called(ctx, id, product, variants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductsRepo) ReplaceVariants(ctx context.Context, productID uint, variants []models.ProductVariant) (*models.Product, error) {
	args := m.Called(ctx, productID, variants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductsRepo) DeleteProduct(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductsRepo) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductsRepo) CountProductsByStatus(ctx context.Context, status models.ProductStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransactionsRepo struct {
	mock.Mock
}

func (m *mockTransactionsRepo) ListTransactions(ctx context.Context, status models.TransactionStatus, search string) ([]models.Transaction, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockTransactionsRepo) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockTransactionsRepo) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionsRepo) UpdateTransaction(ctx context.Context, id uint, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionsRepo) DeleteTransaction(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTransactionsRepo) GetTransactionStats(ctx context.Context) (*models.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionStats), args.Error(1)
}

type mockResellersRepo struct {
	mock.Mock
}

func (m *mockResellersRepo) ListResellers(ctx context.Context) ([]models.Reseller, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reseller), args.Error(1)
}

func (m *mockResellersRepo) CountResellers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, name string) (*sessions.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessions.Session), args.Error(1)
}

func (m *mockSessionStore) Get(ctx context.Context, token string) (*sessions.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessions.Session), args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
