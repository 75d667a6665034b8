package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/repository"
)

type ResellersHandler struct {
	repo repository.ResellersRepositoryInterface
}

func NewResellersHandler(repo repository.ResellersRepositoryInterface) *ResellersHandler {
	return &ResellersHandler{repo: repo}
}

// GetResellers lists the reseller directory ordered by name.
// GET /api/v1/resellers
func (h *ResellersHandler) GetResellers(c *gin.Context) {
	resellers, err := h.repo.ListResellers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve resellers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ResellerListResponse{
		Success: true,
		Data:    resellers,
	})
}
