package review

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dwiky/store-backend/internal/utils"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo    Repository
	catalog ProductCatalog
	logger  *logger.Logger
}

// NewService creates a new review service
func NewService(repo Repository, catalog ProductCatalog, log *logger.Logger) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		logger:  log.WithComponent("review-service"),
	}
}

func (s *service) CreateReview(userID, productID uuid.UUID, rating int, comment string) (*Review, error) {
	s.logger.Info("Reviewing product " + productID.String() + " by user " + userID.String() + " with rating " + utils.IntToString(rating))

	// Validate rating
	if rating < 1 || rating > 5 {
		s.logger.Error("Invalid rating " + utils.IntToString(rating) + " for product " + productID.String() + " by user " + userID.String())
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	// Verify product exists
	if _, err := s.catalog.GetProduct(productID); err != nil {
		s.logger.Error("Product not found " + productID.String() + ": " + err.Error())
		return nil, errors.New("product not found")
	}

	// One review per (user, product): update in place when it already exists
	existing, err := s.repo.FindByUserAndProduct(userID, productID)
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		existing.UpdatedAt = time.Now()

		if updateErr := s.repo.Update(existing); updateErr != nil {
			s.logger.Error("Failed to update review for product " + productID.String() + " by user " + userID.String() + ": " + updateErr.Error())
			return nil, updateErr
		}

		if err := s.refreshAverageRating(productID); err != nil {
			s.logger.Error("Failed to refresh average rating for product " + productID.String() + ": " + err.Error())
		}

		s.logger.Info("Review updated successfully for product " + productID.String() + " by user " + userID.String())
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to look up review for product " + productID.String() + " by user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	review := &Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(review); err != nil {
		s.logger.Error("Failed to create review for product " + productID.String() + " by user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	if err := s.refreshAverageRating(productID); err != nil {
		s.logger.Error("Failed to refresh average rating for product " + productID.String() + ": " + err.Error())
	}

	s.logger.Info("Review created successfully for product " + productID.String() + " by user " + userID.String() + " rating " + utils.IntToString(rating))

	return review, nil
}

// refreshAverageRating recomputes the product's displayed average, rounded to 2 decimal places
func (s *service) refreshAverageRating(productID uuid.UUID) error {
	average, count, err := s.repo.GetAverageRating(productID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	rounded := math.Round(average*100) / 100
	return s.catalog.UpdateAverageRating(productID, rounded)
}

func (s *service) GetProductReviews(productID uuid.UUID) ([]*Review, error) {
	reviews, err := s.repo.FindByProduct(productID)
	if err != nil {
		s.logger.Error("Failed to fetch reviews for product " + productID.String() + ": " + err.Error())
		return nil, err
	}

	return reviews, nil
}

func (s *service) GetReview(userID, productID uuid.UUID) (*Review, error) {
	review, err := s.repo.FindByUserAndProduct(userID, productID)
	if err != nil {
		s.logger.Info("Review not found for product " + productID.String() + " by user " + userID.String())
		return nil, ErrNotFound
	}

	return review, nil
}

func (s *service) DeleteReview(userID, productID uuid.UUID) error {
	s.logger.Info("Deleting review for product " + productID.String() + " by user " + userID.String())

	// Verify review exists
	if _, err := s.repo.FindByUserAndProduct(userID, productID); err != nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(userID, productID); err != nil {
		s.logger.Error("Failed to delete review for product " + productID.String() + " by user " + userID.String() + ": " + err.Error())
		return err
	}

	if err := s.refreshAverageRating(productID); err != nil {
		s.logger.Error("Failed to refresh average rating for product " + productID.String() + ": " + err.Error())
	}

	s.logger.Info("Review deleted successfully for product " + productID.String() + " by user " + userID.String())

	return nil
}
