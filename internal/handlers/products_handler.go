package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-admin-service/internal/events"
	"storefront-admin-service/internal/middleware"
	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/repository"
)

type ProductsHandler struct {
	repo            repository.ProductsRepositoryInterface
	eventsPublisher *events.Publisher
}

// NewProductsHandler creates the catalog handler. The events publisher may
// be nil when NATS is not configured.
func NewProductsHandler(repo repository.ProductsRepositoryInterface, eventsPublisher *events.Publisher) *ProductsHandler {
	return &ProductsHandler{
		repo:            repo,
		eventsPublisher: eventsPublisher,
	}
}

// GetProducts retrieves the product list with nested variants.
// GET /api/v1/products?admin=true|false
// Admin scope returns every status; anything else is scoped to ACTIVE.
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	adminScope := c.Query("admin") == "true"

	products, err := h.repo.ListProducts(c.Request.Context(), adminScope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success: true,
		Data:    products,
	})
}

// GetStorefrontProducts retrieves ACTIVE products for the public storefront.
// GET /api/v1/storefront/products
// The admin scope is never honored here regardless of query parameters.
func (h *ProductsHandler) GetStorefrontProducts(c *gin.Context) {
	products, err := h.repo.ListProducts(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success: true,
		Data:    products,
	})
}

// CreateProduct creates a new product with its variant collection.
// POST /api/v1/products
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
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

	product, ok := h.productFromRequest(c, &req)
	if !ok {
		return
	}

	if err := h.repo.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATION_FAILED",
				Message: "Failed to create product",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishProductCreated(product, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusCreated, models.ProductResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product created successfully"),
	})
}

// UpdateProduct replaces the product's scalar fields and its entire variant
// collection.
// PUT /api/v1/products/:id
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
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

	product, ok := h.productFromRequest(c, &req)
	if !ok {
		return
	}

	updated, err := h.repo.UpdateProduct(c.Request.Context(), productID, product, product.Variants)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondProductNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishProductUpdated(updated, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    updated,
		Message: stringPtr("Product updated successfully"),
	})
}

// ReplaceVariants overwrites the product's variant collection in one
// operation. Used by the stock-only editor flow.
// PUT /api/v1/products/:id/variants
func (h *ProductsHandler) ReplaceVariants(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}

	var req models.ReplaceVariantsRequest
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

	updated, err := h.repo.ReplaceVariants(c.Request.Context(), productID, variantsFromInputs(req.Variants))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondProductNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to replace variants",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishProductUpdated(updated, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    updated,
		Message: stringPtr("Variants replaced successfully"),
	})
}

// DeleteProduct removes a product and its variants. Deletion is rejected
// while transactions still reference the product.
// DELETE /api/v1/products/:id
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteProduct(c.Request.Context(), productID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondProductNotFound(c)
		case errors.Is(err, repository.ErrProductReferenced):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "PRODUCT_REFERENCED",
					Message: "Product has transactions and cannot be deleted",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DELETION_FAILED",
					Message: "Failed to delete product",
				},
			})
		}
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishProductDeleted(productID, middleware.GetAdminName(c))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Product deleted successfully"),
	})
}

// productFromRequest validates the payload and builds the product model.
// Writes the error response itself and returns ok=false on failure.
func (h *ProductsHandler) productFromRequest(c *gin.Context, req *models.CreateProductRequest) (*models.Product, bool) {
	if *req.Price < 0 {
		respondValidation(c, "price", "Price must be non-negative")
		return nil, false
	}
	if *req.Stock < 0 {
		respondValidation(c, "stock", "Stock must be non-negative")
		return nil, false
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}
	if !status.Valid() {
		respondValidation(c, "status", "Status must be ACTIVE or INACTIVE")
		return nil, false
	}

	enableNotes := true
	if req.EnableNotes != nil {
		enableNotes = *req.EnableNotes
	}

	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Status:      status,
		EnableNotes: enableNotes,
		Variants:    variantsFromInputs(req.Variants),
	}, true
}

// variantsFromInputs converts the submitted collection; a missing or
// negative stock value defaults to zero.
func variantsFromInputs(inputs []models.VariantInput) []models.ProductVariant {
	variants := make([]models.ProductVariant, 0, len(inputs))
	for _, input := range inputs {
		stock := input.Stock
		if stock < 0 {
			stock = 0
		}
		variants = append(variants, models.ProductVariant{
			Name:  input.Name,
			Value: input.Value,
			Stock: stock,
		})
	}
	return variants
}

func respondProductNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Product not found",
		},
	})
}

func respondValidation(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Field:   field,
		},
	})
}

// parseID reads the :id route parameter. Writes the error response itself
// and returns ok=false on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Invalid identifier format",
			},
		})
		return 0, false
	}
	return uint(id), true
}

func stringPtr(s string) *string {
	return &s
}
