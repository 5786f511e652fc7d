package adapter

import (
	"errors"

	"github.com/dwiky/store-backend/internal/product"
	"github.com/dwiky/store-backend/internal/recommend"
	"github.com/dwiky/store-backend/internal/review"
	"github.com/google/uuid"
)

// ReviewRepositoryToRatingSource adapts review.Repository to recommend.RatingSource
type ReviewRepositoryToRatingSource struct {
	repo review.Repository
}

// NewReviewRepositoryToRatingSource creates a new adapter
func NewReviewRepositoryToRatingSource(repo review.Repository) recommend.RatingSource {
	return &ReviewRepositoryToRatingSource{
		repo: repo,
	}
}

func (a *ReviewRepositoryToRatingSource) FindByProduct(productID uuid.UUID) ([]recommend.Rating, error) {
	reviews, err := a.repo.FindByProduct(productID)
	if err != nil {
		return nil, err
	}

	ratings := make([]recommend.Rating, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, recommend.Rating{
			UserID:    r.UserID,
			ProductID: r.ProductID,
			Score:     r.Rating,
		})
	}

	return ratings, nil
}

func (a *ReviewRepositoryToRatingSource) FindByUserAndProduct(userID, productID uuid.UUID) (*recommend.Rating, error) {
	r, err := a.repo.FindByUserAndProduct(userID, productID)
	if err != nil {
		// "Never rated" is an expected outcome for the recommender, not an error
		if errors.Is(err, review.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &recommend.Rating{
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Score:     r.Rating,
	}, nil
}

func (a *ReviewRepositoryToRatingSource) DistinctRatedProductIDs() ([]uuid.UUID, error) {
	return a.repo.DistinctRatedProductIDs()
}

// ProductServiceToCatalog adapts product.Service to recommend.Catalog
type ProductServiceToCatalog struct {
	service product.Service
}

// NewProductServiceToCatalog creates a new adapter
func NewProductServiceToCatalog(s product.Service) recommend.Catalog {
	return &ProductServiceToCatalog{
		service: s,
	}
}

func (a *ProductServiceToCatalog) FindByIDs(ids []uuid.UUID) ([]*recommend.Product, error) {
	products, err := a.service.GetProductsByIDs(ids)
	if err != nil {
		return nil, err
	}

	// Convert product.Product to recommend.Product
	converted := make([]*recommend.Product, 0, len(products))
	for _, p := range products {
		converted = append(converted, &recommend.Product{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Images:        p.Images,
			Category:      p.Category,
			AverageRating: p.AverageRating,
		})
	}

	return converted, nil
}

// ProductServiceToReviewCatalog adapts product.Service to review.ProductCatalog
type ProductServiceToReviewCatalog struct {
	service product.Service
}

// NewProductServiceToReviewCatalog creates a new adapter
func NewProductServiceToReviewCatalog(s product.Service) review.ProductCatalog {
	return &ProductServiceToReviewCatalog{
		service: s,
	}
}

func (a *ProductServiceToReviewCatalog) GetProduct(id uuid.UUID) (*review.Product, error) {
	p, err := a.service.GetProduct(id)
	if err != nil {
		return nil, err
	}

	// Convert product.Product to review.Product
	return &review.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		AverageRating: p.AverageRating,
	}, nil
}

func (a *ProductServiceToReviewCatalog) UpdateAverageRating(id uuid.UUID, average float64) error {
	return a.service.UpdateAverageRating(id, average)
}
