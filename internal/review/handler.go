package review

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dwiky/store-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for review operations
type Handler struct {
	service Service
}

// NewHandler creates a new review handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateReview handles review creation/update
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Extract user ID from JWT token
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	review, err := h.service.CreateReview(userID, productID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case err.Error() == "product not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case strings.HasPrefix(err.Error(), "rating"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, review.ToResponse())
}

// GetProductReviews handles listing all reviews for a product
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	reviews, err := h.service.GetProductReviews(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	responses := make([]*ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, review.ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}

// GetReview handles getting the authenticated user's review of a product
func (h *Handler) GetReview(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	review, err := h.service.GetReview(userID, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, review.ToResponse())
}

// DeleteReview handles review deletion
func (h *Handler) DeleteReview(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.service.DeleteReview(userID, productID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// RegisterRoutes registers all review routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	// Review listing is public, writes require authentication
	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.GetProductReviews)

		protected := reviews.Group("")
		protected.Use(authMiddleware)
		{
			protected.POST("", h.CreateReview)
			protected.GET("/products/:productId", h.GetReview)
			protected.DELETE("/products/:productId", h.DeleteReview)
		}
	}
}
