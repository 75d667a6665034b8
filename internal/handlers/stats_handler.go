package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/repository"
)

type StatsHandler struct {
	products     repository.ProductsRepositoryInterface
	transactions repository.TransactionsRepositoryInterface
	resellers    repository.ResellersRepositoryInterface
}

func NewStatsHandler(
	products repository.ProductsRepositoryInterface,
	transactions repository.TransactionsRepositoryInterface,
	resellers repository.ResellersRepositoryInterface,
) *StatsHandler {
	return &StatsHandler{
		products:     products,
		transactions: transactions,
		resellers:    resellers,
	}
}

// GetDashboardStats returns catalog and reseller counts for the dashboard
// cards. Counts are computed with status-scoped queries so that inactive
// products are included regardless of the public listing scope.
// GET /api/v1/stats/dashboard
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.products.CountProducts(ctx)
	if err != nil {
		respondStatsFailed(c)
		return
	}
	active, err := h.products.CountProductsByStatus(ctx, models.ProductStatusActive)
	if err != nil {
		respondStatsFailed(c)
		return
	}
	inactive, err := h.products.CountProductsByStatus(ctx, models.ProductStatusInactive)
	if err != nil {
		respondStatsFailed(c)
		return
	}
	resellers, err := h.resellers.CountResellers(ctx)
	if err != nil {
		respondStatsFailed(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: models.DashboardStats{
			TotalProducts:    total,
			ActiveProducts:   active,
			InactiveProducts: inactive,
			TotalResellers:   resellers,
		},
	})
}

// GetTransactionStats returns overall transaction counts and revenue.
// Revenue excludes CANCELLED transactions.
// GET /api/v1/transactions/stats
func (h *StatsHandler) GetTransactionStats(c *gin.Context) {
	stats, err := h.transactions.GetTransactionStats(c.Request.Context())
	if err != nil {
		respondStatsFailed(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    stats,
	})
}

func respondStatsFailed(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "FETCH_FAILED",
			Message: "Failed to compute statistics",
		},
	})
}
