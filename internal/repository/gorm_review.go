package repository

import (
	"fmt"

	reviewPkg "github.com/dwiky/store-backend/internal/review"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormReviewRepository implements the review.Repository interface with GORM optimizations
type gormReviewRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMReviewRepository creates a new GORM-based review repository
func NewGORMReviewRepository(db *gorm.DB, log *logger.Logger) reviewPkg.Repository {
	return &gormReviewRepository{
		db:     db,
		logger: log.WithComponent("gorm-review-repository"),
	}
}

func (r *gormReviewRepository) Create(review *reviewPkg.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *gormReviewRepository) FindByUserAndProduct(userID, productID uuid.UUID) (*reviewPkg.Review, error) {
	var review reviewPkg.Review

	// Use compound primary key lookup for optimal performance
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, reviewPkg.ErrNotFound
		}

		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &review, nil
}

func (r *gormReviewRepository) Update(review *reviewPkg.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

func (r *gormReviewRepository) Delete(userID, productID uuid.UUID) error {
	result := r.db.Delete(&reviewPkg.Review{}, "user_id = ? AND product_id = ?", userID, productID)
	if err := result.Error; err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Repository warning")
		return reviewPkg.ErrNotFound
	}

	return nil
}

func (r *gormReviewRepository) FindByProduct(productID uuid.UUID) ([]*reviewPkg.Review, error) {
	var reviews []*reviewPkg.Review

	// Use index-optimized query
	err := r.db.Where("product_id = ?", productID).Find(&reviews).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return reviews, nil
}

func (r *gormReviewRepository) FindByUser(userID uuid.UUID) ([]*reviewPkg.Review, error) {
	var reviews []*reviewPkg.Review

	err := r.db.Where("user_id = ?", userID).Find(&reviews).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return reviews, nil
}

func (r *gormReviewRepository) DistinctRatedProductIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := r.db.Model(&reviewPkg.Review{}).
		Distinct("product_id").
		Pluck("product_id", &ids).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return ids, nil
}

func (r *gormReviewRepository) GetAverageRating(productID uuid.UUID) (float64, int, error) {
	type Result struct {
		Average float64
		Count   int
	}

	var result Result

	// Use efficient aggregation query
	err := r.db.Model(&reviewPkg.Review{}).
		Select("AVG(rating) as average, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&result).Error

	if err != nil {
		r.logger.Error("Repository error")
		return 0, 0, fmt.Errorf("database error: %w", err)
	}

	return result.Average, result.Count, nil
}
