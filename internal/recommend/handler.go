package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dwiky/store-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for recommendation operations
type Handler struct {
	service Service
}

// NewHandler creates a new recommendation handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RebuildNeighbors handles explicit neighbor recomputation for a product,
// typically triggered after a review is added
func (h *Handler) RebuildNeighbors(c *gin.Context) {
	var req RebuildNeighborsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.service.RebuildNeighbors(productID); err != nil {
		if errors.Is(err, ErrNoReviews) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No reviews found for the given product"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild neighbors"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Neighbors updated successfully"})
}

// Predict handles explicit prediction computation for a user/product pair
func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	prediction, err := h.service.Predict(userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNeighborsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No neighbors found for this product"})
		case errors.Is(err, ErrInsufficientData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient data to make a prediction"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute prediction"})
		}
		return
	}

	c.JSON(http.StatusOK, &PredictionResponse{Prediction: prediction})
}

// GetRecommendations handles getting ranked recommendations for the
// authenticated user. Degrades to an empty list instead of surfacing errors.
func (h *Handler) GetRecommendations(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	recommendations, err := h.service.GetRecommendations(userID, limit)
	if err != nil {
		recommendations = []*Product{}
	}

	c.JSON(http.StatusOK, BuildRecommendationResponse(recommendations, userID))
}

// GetSimilarProducts handles the public "customers also liked" listing for a
// product detail page
func (h *Handler) GetSimilarProducts(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	products, err := h.service.GetSimilarProducts(productID)
	if err != nil {
		if errors.Is(err, ErrNeighborsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No recommendations available."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar products"})
		}
		return
	}

	c.JSON(http.StatusOK, products)
}

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	// Public similar-products listing for product detail pages
	router.GET("/products/:id/similar", h.GetSimilarProducts)

	// Personalized recommendations for the signed-in user
	recommendations := router.Group("/recommendations")
	recommendations.Use(authMiddleware)
	{
		recommendations.GET("", h.GetRecommendations)
	}

	// Batch maintenance operations for admin/automation callers
	recommender := router.Group("/recommender")
	recommender.Use(authMiddleware)
	{
		recommender.POST("/neighbors", h.RebuildNeighbors)
		recommender.POST("/predictions", h.Predict)
	}
}
