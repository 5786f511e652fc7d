package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no review exists for the requested key
var ErrNotFound = errors.New("review not found")

// Review represents a user's review of a product with optimized GORM relationships
type Review struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;not null;index:idx_user_reviews"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey;not null;index:idx_product_reviews"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations (forward declarations)
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string
}

// Product represents product for foreign key relationship (forward declaration)
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Price         float64
	AverageRating float64
}

// Repository defines the interface for review data access
type Repository interface {
	Create(review *Review) error
	FindByUserAndProduct(userID, productID uuid.UUID) (*Review, error)
	Update(review *Review) error
	Delete(userID, productID uuid.UUID) error

	// Rating-store queries consumed by the recommender
	FindByProduct(productID uuid.UUID) ([]*Review, error)
	FindByUser(userID uuid.UUID) ([]*Review, error)
	DistinctRatedProductIDs() ([]uuid.UUID, error)
	GetAverageRating(productID uuid.UUID) (float64, int, error)
}

// Service defines the interface for review business logic
type Service interface {
	CreateReview(userID, productID uuid.UUID, rating int, comment string) (*Review, error)
	GetProductReviews(productID uuid.UUID) ([]*Review, error)
	GetReview(userID, productID uuid.UUID) (*Review, error)
	DeleteReview(userID, productID uuid.UUID) error
}

// ProductCatalog interface for product validation and aggregate updates
type ProductCatalog interface {
	GetProduct(id uuid.UUID) (*Product, error)
	UpdateAverageRating(id uuid.UUID, average float64) error
}

// CreateReviewRequest represents review creation/update request
type CreateReviewRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

// ReviewResponse represents review in API responses
type ReviewResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Review to ReviewResponse
func (r *Review) ToResponse() *ReviewResponse {
	return &ReviewResponse{
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// IsValidRating checks if the rating is within valid range
func (r *Review) IsValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
