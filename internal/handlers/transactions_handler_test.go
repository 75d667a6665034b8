package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-admin-service/internal/models"
)

func transactionsRouter(repo *mockTransactionsRepo) *gin.Engine {
	h := NewTransactionsHandler(repo, nil, time.UTC)
	r := gin.New()
	r.GET("/transactions", h.GetTransactions)
	r.GET("/transactions/export", h.ExportTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
	r.PUT("/transactions/:id", h.UpdateTransaction)
	r.DELETE("/transactions/:id", h.DeleteTransaction)
	return r
}

func TestGetTransactionsPassesFilters(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("ListTransactions", mock.Anything, models.TransactionStatusPending, "coffee").
		Return([]models.Transaction{{ID: 1, Status: models.TransactionStatusPending}}, nil)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions?status=PENDING&search=coffee", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.TransactionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	repo.AssertExpectations(t)
}

func TestGetTransactionsRejectsUnknownStatus(t *testing.T) {
	repo := new(mockTransactionsRepo)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions?status=DELIVERED", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "ListTransactions")
}

func TestGetTransactionByID(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("GetTransactionByID", mock.Anything, uint(42)).
		Return(&models.Transaction{ID: 42, Status: models.TransactionStatusCompleted}, nil)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(42), resp.Data.ID)
}

func TestGetTransactionNotFound(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("GetTransactionByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTransactionPartial(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("UpdateTransaction", mock.Anything, uint(42), mock.MatchedBy(func(req *models.UpdateTransactionRequest) bool {
		return req.Status != nil && *req.Status == models.TransactionStatusShipped &&
			req.Notes == nil && req.CustomerName == nil
	})).Return(&models.Transaction{ID: 42, Status: models.TransactionStatusShipped}, nil)

	w := performJSON(transactionsRouter(repo), http.MethodPut, "/transactions/42",
		map[string]interface{}{"status": "SHIPPED"})

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestUpdateTransactionRejectsUnknownStatus(t *testing.T) {
	repo := new(mockTransactionsRepo)

	w := performJSON(transactionsRouter(repo), http.MethodPut, "/transactions/42",
		map[string]interface{}{"status": "DELIVERED"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "UpdateTransaction")
}

func TestDeleteTransaction(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("DeleteTransaction", mock.Anything, uint(42)).Return(nil)

	w := performJSON(transactionsRouter(repo), http.MethodDelete, "/transactions/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestExportTransactionsCSV(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("ListAllTransactions", mock.Anything).
		Return([]models.Transaction{{
			ID:         1,
			Product:    &models.Product{Name: "Coffee"},
			Quantity:   1,
			TotalPrice: 5000,
			Status:     models.TransactionStatusPending,
			CreatedAt:  time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
		}}, nil)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions/export", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.String()
	assert.Contains(t, body, `"ID","Tanggal","Produk"`)
	assert.Contains(t, body, `"Coffee"`)
	assert.Contains(t, body, `"Standard"`)
	assert.Contains(t, body, `"Direct"`)
}

func TestExportTransactionsXLSX(t *testing.T) {
	repo := new(mockTransactionsRepo)
	repo.On("ListAllTransactions", mock.Anything).Return([]models.Transaction{}, nil)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions/export?format=xlsx", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestExportTransactionsRejectsUnknownFormat(t *testing.T) {
	repo := new(mockTransactionsRepo)

	w := performJSON(transactionsRouter(repo), http.MethodGet, "/transactions/export?format=pdf", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "ListAllTransactions")
}
