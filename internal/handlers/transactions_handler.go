package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-admin-service/internal/events"
	"storefront-admin-service/internal/export"
	"storefront-admin-service/internal/middleware"
	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/repository"
)

type TransactionsHandler struct {
	repo            repository.TransactionsRepositoryInterface
	eventsPublisher *events.Publisher
	exportLocation  *time.Location
}

// NewTransactionsHandler creates the transactions handler. exportLocation
// controls how export timestamps are rendered; nil means UTC.
func NewTransactionsHandler(repo repository.TransactionsRepositoryInterface, eventsPublisher *events.Publisher, exportLocation *time.Location) *TransactionsHandler {
	return &TransactionsHandler{
		repo:            repo,
		eventsPublisher: eventsPublisher,
		exportLocation:  exportLocation,
	}
}

// GetTransactions lists transactions newest first.
// GET /api/v1/transactions?status=PENDING&search=...
func (h *TransactionsHandler) GetTransactions(c *gin.Context) {
	status := models.TransactionStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondValidation(c, "status", "Invalid transaction status")
		return
	}

	transactions, err := h.repo.ListTransactions(c.Request.Context(), status, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve transactions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.TransactionListResponse{
		Success: true,
		Data:    transactions,
	})
}

// GetTransaction retrieves a single transaction with its relations.
// GET /api/v1/transactions/:id
func (h *TransactionsHandler) GetTransaction(c *gin.Context) {
	transactionID, ok := parseID(c)
	if !ok {
		return
	}

	transaction, err := h.repo.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondTransactionNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve transaction",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.TransactionResponse{
		Success: true,
		Data:    transaction,
	})
}

// UpdateTransaction applies a partial update; only status, notes and
// customer contact fields are editable.
// PUT /api/v1/transactions/:id
func (h *TransactionsHandler) UpdateTransaction(c *gin.Context) {
	transactionID, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		respondValidation(c, "status", "Invalid transaction status")
		return
	}

	updated, err := h.repo.UpdateTransaction(c.Request.Context(), transactionID, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondTransactionNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update transaction",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishTransactionUpdated(updated, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusOK, models.TransactionResponse{
		Success: true,
		Data:    updated,
		Message: stringPtr("Transaction updated successfully"),
	})
}

// DeleteTransaction removes a transaction record.
// DELETE /api/v1/transactions/:id
func (h *TransactionsHandler) DeleteTransaction(c *gin.Context) {
	transactionID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondTransactionNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETION_FAILED",
				Message: "Failed to delete transaction",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishTransactionDeleted(transactionID, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Transaction deleted successfully"),
	})
}

// ExportTransactions streams the full transaction table as a file download.
// GET /api/v1/transactions/export?format=csv|xlsx (default csv)
// The export always covers every transaction regardless of list filters.
func (h *TransactionsHandler) ExportTransactions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondValidation(c, "format", "Format must be csv or xlsx")
		return
	}

	transactions, err := h.repo.ListAllTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EXPORT_FAILED",
				Message: "Failed to retrieve transactions for export",
			},
		})
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "xlsx":
		body, err = export.TransactionsXLSX(transactions, h.exportLocation)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		body = export.TransactionsCSV(transactions, h.exportLocation)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EXPORT_FAILED",
				Message: "Failed to serialize export",
			},
		})
		return
	}

	filename := export.Filename(time.Now(), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

func respondTransactionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Transaction not found",
		},
	})
}
