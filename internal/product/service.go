package product

import (
	"github.com/dwiky/store-backend/internal/utils"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("product-service"),
	}
}

func (s *service) GetProduct(id uuid.UUID) (*Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Info("Product not found: " + id.String())
		return nil, err
	}

	return product, nil
}

func (s *service) GetProductsByIDs(ids []uuid.UUID) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}

	products, err := s.repo.FindByIDs(ids)
	if err != nil {
		s.logger.Error("Failed to fetch products by IDs: " + err.Error())
		return nil, err
	}

	return products, nil
}

func (s *service) ListProducts(page, limit int) ([]*Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	s.logger.Info("Listing products (page " + utils.IntToString(page) + ", limit " + utils.IntToString(limit) + ", offset " + utils.IntToString(offset) + ")")

	products, err := s.repo.FindAll(offset, limit)
	if err != nil {
		s.logger.Error("Failed to list products: " + err.Error())
		return nil, 0, err
	}

	total, err := s.repo.Count()
	if err != nil {
		return products, 0, nil // Return products even if count fails
	}

	return products, total, nil
}

func (s *service) UpdateAverageRating(id uuid.UUID, average float64) error {
	if err := s.repo.UpdateAverageRating(id, average); err != nil {
		s.logger.Error("Failed to update average rating for product " + id.String() + ": " + err.Error())
		return err
	}

	return nil
}
