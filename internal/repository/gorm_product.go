package repository

import (
	"fmt"

	productPkg "github.com/dwiky/store-backend/internal/product"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormProductRepository implements the product.Repository interface
type gormProductRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMProductRepository creates a new GORM-based product repository
func NewGORMProductRepository(db *gorm.DB, log *logger.Logger) productPkg.Repository {
	return &gormProductRepository{
		db:     db,
		logger: log.WithComponent("gorm-product-repository"),
	}
}

func (r *gormProductRepository) FindByID(id uuid.UUID) (*productPkg.Product, error) {
	var product productPkg.Product

	// Use primary key lookup for optimal performance
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, productPkg.ErrNotFound
		}

		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (r *gormProductRepository) FindByIDs(ids []uuid.UUID) ([]*productPkg.Product, error) {
	var products []*productPkg.Product

	err := r.db.Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) FindAll(offset, limit int) ([]*productPkg.Product, error) {
	var products []*productPkg.Product

	err := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) Count() (int64, error) {
	var count int64

	err := r.db.Model(&productPkg.Product{}).Count(&count).Error
	if err != nil {
		r.logger.Error("Repository error")
		return 0, fmt.Errorf("database error: %w", err)
	}

	return count, nil
}

func (r *gormProductRepository) UpdateAverageRating(id uuid.UUID, average float64) error {
	err := r.db.Model(&productPkg.Product{}).
		Where("id = ?", id).
		Update("average_rating", average).Error
	if err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to update average rating: %w", err)
	}

	return nil
}
