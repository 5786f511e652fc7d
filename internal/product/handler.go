package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dwiky/store-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for catalog operations
type Handler struct {
	service Service
}

// NewHandler creates a new product handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetProduct handles getting a single product
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// ListProducts handles catalog browsing with pagination
func (h *Handler) ListProducts(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	products, total, err := h.service.ListProducts(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.ToResponse())
	}

	meta := utils.CalculatePagination(total, page, limit)
	c.JSON(http.StatusOK, &ProductListResponse{
		Products: responses,
		Total:    meta.Total,
		Page:     meta.Page,
		Limit:    meta.Limit,
		Pages:    meta.Pages,
	})
}

// RegisterRoutes registers all catalog routes (public browsing)
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
}
