package repository

import (
	"fmt"

	recommendPkg "github.com/dwiky/store-backend/internal/recommend"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormNeighborRepository implements the recommend.NeighborRepository interface
type gormNeighborRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMNeighborRepository creates a new GORM-based neighbor set repository
func NewGORMNeighborRepository(db *gorm.DB, log *logger.Logger) recommendPkg.NeighborRepository {
	return &gormNeighborRepository{
		db:     db,
		logger: log.WithComponent("gorm-neighbor-repository"),
	}
}

func (r *gormNeighborRepository) Upsert(set *recommendPkg.NeighborSet) error {
	// Single atomic replace keyed by product_id - concurrent rebuilds for the
	// same product resolve to last-write-wins
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"neighbors", "updated_at"}),
	}).Create(set).Error
	if err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to upsert neighbor set: %w", err)
	}

	return nil
}

func (r *gormNeighborRepository) FindByProduct(productID uuid.UUID) (*recommendPkg.NeighborSet, error) {
	var set recommendPkg.NeighborSet

	err := r.db.First(&set, "product_id = ?", productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &set, nil
}

// gormPredictionRepository implements the recommend.PredictionRepository interface
type gormPredictionRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMPredictionRepository creates a new GORM-based prediction repository
func NewGORMPredictionRepository(db *gorm.DB, log *logger.Logger) recommendPkg.PredictionRepository {
	return &gormPredictionRepository{
		db:     db,
		logger: log.WithComponent("gorm-prediction-repository"),
	}
}

func (r *gormPredictionRepository) Upsert(prediction *recommendPkg.Prediction) error {
	// Atomic replace keyed by (user_id, product_id)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prediction", "updated_at"}),
	}).Create(prediction).Error
	if err != nil {
		r.logger.Error("Repository error")
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	return nil
}

func (r *gormPredictionRepository) FindByUser(userID uuid.UUID) ([]*recommendPkg.Prediction, error) {
	var predictions []*recommendPkg.Prediction

	err := r.db.Where("user_id = ?", userID).
		Order("prediction DESC").
		Find(&predictions).Error
	if err != nil {
		r.logger.Error("Repository error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return predictions, nil
}
