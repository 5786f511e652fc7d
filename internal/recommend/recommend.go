package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Domain errors surfaced by the recommendation pipeline. "No data" outcomes are
// distinct from store failures so callers know which step to retry.
var (
	// ErrNoReviews means the target product has zero reviews, so no neighbor
	// set can be computed for it.
	ErrNoReviews = errors.New("no reviews found for product")

	// ErrNeighborsNotFound means a prediction was requested before the
	// product's neighbor set was built.
	ErrNeighborsNotFound = errors.New("no neighbors found for product")

	// ErrInsufficientData means neighbors exist but the user has rated none of
	// them, so a prediction cannot be made for this user/product pair.
	ErrInsufficientData = errors.New("insufficient data to make a prediction")
)

// NeighborEntry is one (neighbor, similarity) pair of a product's neighbor set
type NeighborEntry struct {
	NeighborID uuid.UUID `json:"neighbor_id"`
	Similarity float64   `json:"similarity"`
}

// NeighborSet holds a product's top similar products, sorted descending by
// similarity. The row is replaced wholesale on every rebuild.
type NeighborSet struct {
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;primaryKey"`
	Neighbors []NeighborEntry `json:"neighbors" gorm:"serializer:json;type:jsonb;not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (NeighborSet) TableName() string {
	return "neighbor_sets"
}

// Prediction is the estimated rating a user would give a product, derived from
// the user's ratings on the product's neighbors. Stored at full precision.
type Prediction struct {
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey"`
	Prediction float64   `json:"prediction" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

// Rating represents a review as seen by the recommender (forward declaration)
type Rating struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Score     int
}

// Product represents catalog data used to hydrate results (forward declaration)
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Images        string    `json:"images"`
	Category      string    `json:"category"`
	AverageRating float64   `json:"average_rating"`
}

// RatingSource is the read-only view over review data the recommender consumes
type RatingSource interface {
	FindByProduct(productID uuid.UUID) ([]Rating, error)
	FindByUserAndProduct(userID, productID uuid.UUID) (*Rating, error)
	DistinctRatedProductIDs() ([]uuid.UUID, error)
}

// NeighborRepository persists per-product neighbor sets.
// FindByProduct returns (nil, nil) when no set has been built yet.
type NeighborRepository interface {
	Upsert(set *NeighborSet) error
	FindByProduct(productID uuid.UUID) (*NeighborSet, error)
}

// PredictionRepository persists per-(user, product) predictions.
// FindByUser returns predictions sorted descending by predicted score.
type PredictionRepository interface {
	Upsert(prediction *Prediction) error
	FindByUser(userID uuid.UUID) ([]*Prediction, error)
}

// Catalog hydrates product identifiers with display data
type Catalog interface {
	FindByIDs(ids []uuid.UUID) ([]*Product, error)
}

// Service defines the interface for recommendation business logic
type Service interface {
	RebuildNeighbors(productID uuid.UUID) error
	RebuildAllNeighbors(ctx context.Context) error
	Predict(userID, productID uuid.UUID) (float64, error)
	GetRecommendations(userID uuid.UUID, limit int) ([]*Product, error)
	GetSimilarProducts(productID uuid.UUID) ([]*Product, error)
}

// RebuildNeighborsRequest represents a neighbor rebuild request
type RebuildNeighborsRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// PredictRequest represents a prediction request
type PredictRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// PredictionResponse carries a computed prediction value
type PredictionResponse struct {
	Prediction float64 `json:"prediction"`
}

// RecommendationResponse represents a ranked recommendation list
type RecommendationResponse struct {
	Recommendations []*Product `json:"recommendations"`
	UserID          uuid.UUID  `json:"user_id"`
	Count           int        `json:"count"`
	GeneratedAt     time.Time  `json:"generated_at"`
}

// BuildRecommendationResponse converts ranked products to a RecommendationResponse
func BuildRecommendationResponse(products []*Product, userID uuid.UUID) *RecommendationResponse {
	return &RecommendationResponse{
		Recommendations: products,
		UserID:          userID,
		Count:           len(products),
		GeneratedAt:     time.Now(),
	}
}
