package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the requested product does not exist
var ErrNotFound = errors.New("product not found")

// Product categories supported by the store
const (
	CategoryClothes     = "Clothes"
	CategoryAccessories = "Accessories"
)

// Product represents a catalog item
type Product struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"not null"`
	Images        string    `json:"images" gorm:"size:2048"`
	Category      string    `json:"category" gorm:"size:50;index"`
	Sizes         []string  `json:"sizes" gorm:"serializer:json;type:jsonb"`
	AverageRating float64   `json:"average_rating" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Repository defines the interface for product data access
type Repository interface {
	FindByID(id uuid.UUID) (*Product, error)
	FindByIDs(ids []uuid.UUID) ([]*Product, error)
	FindAll(offset, limit int) ([]*Product, error)
	Count() (int64, error)
	UpdateAverageRating(id uuid.UUID, average float64) error
}

// Service defines the interface for catalog business logic
type Service interface {
	GetProduct(id uuid.UUID) (*Product, error)
	GetProductsByIDs(ids []uuid.UUID) ([]*Product, error)
	ListProducts(page, limit int) ([]*Product, int64, error)
	UpdateAverageRating(id uuid.UUID, average float64) error
}

// ProductResponse represents product in API responses
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Images        string    `json:"images"`
	Category      string    `json:"category"`
	Sizes         []string  `json:"sizes"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductListResponse represents paginated product list
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	Pages    int                `json:"pages"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Images:        p.Images,
		Category:      p.Category,
		Sizes:         p.Sizes,
		AverageRating: p.AverageRating,
		CreatedAt:     p.CreatedAt,
	}
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
