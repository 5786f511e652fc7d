package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dwiky/store-backend/config"
	"github.com/dwiky/store-backend/internal/utils"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Default limits matching the reference store behavior
const (
	defaultNeighborLimit = 20
	defaultDisplayLimit  = 4
)

// service implements the Service interface
type service struct {
	ratings       RatingSource
	neighbors     NeighborRepository
	predictions   PredictionRepository
	catalog       Catalog
	neighborLimit int
	displayLimit  int
	logger        *logger.Logger
}

// NewService creates a new recommendation service with validation and defaults
func NewService(ratings RatingSource, neighbors NeighborRepository, predictions PredictionRepository, catalog Catalog, cfg *config.RecommenderConfig, log *logger.Logger) (Service, error) {
	neighborLimit := defaultNeighborLimit
	if cfg != nil && cfg.NeighborLimit != "" {
		parsed, err := strconv.Atoi(cfg.NeighborLimit)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid neighbor limit '%s'", cfg.NeighborLimit)
		}
		neighborLimit = parsed
	}

	displayLimit := defaultDisplayLimit
	if cfg != nil && cfg.DisplayLimit != "" {
		parsed, err := strconv.Atoi(cfg.DisplayLimit)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid display limit '%s'", cfg.DisplayLimit)
		}
		displayLimit = parsed
	}

	return &service{
		ratings:       ratings,
		neighbors:     neighbors,
		predictions:   predictions,
		catalog:       catalog,
		neighborLimit: neighborLimit,
		displayLimit:  displayLimit,
		logger:        log.WithComponent("recommend-service"),
	}, nil
}

func (s *service) RebuildNeighbors(productID uuid.UUID) error {
	s.logger.Info("Rebuilding neighbors for product " + productID.String())

	productRatings, err := s.ratings.FindByProduct(productID)
	if err != nil {
		s.logger.Error("Failed to fetch ratings for product " + productID.String() + ": " + err.Error())
		return fmt.Errorf("failed to fetch ratings: %w", err)
	}
	if len(productRatings) == 0 {
		s.logger.Info("No reviews found for product " + productID.String())
		return ErrNoReviews
	}

	candidateIDs, err := s.ratings.DistinctRatedProductIDs()
	if err != nil {
		s.logger.Error("Failed to list rated products: " + err.Error())
		return fmt.Errorf("failed to list rated products: %w", err)
	}

	entries := make([]NeighborEntry, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		if candidateID == productID {
			continue
		}

		candidateRatings, err := s.ratings.FindByProduct(candidateID)
		if err != nil {
			s.logger.Error("Failed to fetch ratings for candidate " + candidateID.String() + ": " + err.Error())
			return fmt.Errorf("failed to fetch ratings: %w", err)
		}

		// Unrelated or negatively related candidates are dropped, not stored
		// with a zero weight
		if similarity := CosineSimilarity(productRatings, candidateRatings); similarity > 0 {
			entries = append(entries, NeighborEntry{
				NeighborID: candidateID,
				Similarity: similarity,
			})
		}
	}

	// Stable keeps candidate discovery order on ties
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Similarity > entries[j].Similarity
	})
	if len(entries) > s.neighborLimit {
		entries = entries[:s.neighborLimit]
	}

	if err := s.neighbors.Upsert(&NeighborSet{ProductID: productID, Neighbors: entries}); err != nil {
		s.logger.Error("Failed to store neighbor set for product " + productID.String() + ": " + err.Error())
		return fmt.Errorf("failed to store neighbor set: %w", err)
	}

	s.logger.Info("Neighbor set updated for product " + productID.String() + " with " + utils.IntToString(len(entries)) + " neighbors")

	return nil
}

func (s *service) RebuildAllNeighbors(ctx context.Context) error {
	productIDs, err := s.ratings.DistinctRatedProductIDs()
	if err != nil {
		s.logger.Error("Failed to list rated products: " + err.Error())
		return fmt.Errorf("failed to list rated products: %w", err)
	}

	s.logger.Info("Rebuilding neighbors for " + utils.IntToString(len(productIDs)) + " rated products")

	rebuilt := 0
	for _, productID := range productIDs {
		// Cancellation is honored between products; each completed upsert
		// stands on its own
		select {
		case <-ctx.Done():
			s.logger.Info("Neighbor rebuild cancelled after " + utils.IntToString(rebuilt) + " products")
			return ctx.Err()
		default:
		}

		if err := s.RebuildNeighbors(productID); err != nil {
			if errors.Is(err, ErrNoReviews) {
				continue
			}
			s.logger.Error("Neighbor rebuild failed for product " + productID.String() + ": " + err.Error())
			continue
		}
		rebuilt++
	}

	s.logger.Info("Neighbor rebuild completed for " + utils.IntToString(rebuilt) + " products")

	return nil
}

func (s *service) Predict(userID, productID uuid.UUID) (float64, error) {
	set, err := s.neighbors.FindByProduct(productID)
	if err != nil {
		s.logger.Error("Failed to fetch neighbor set for product " + productID.String() + ": " + err.Error())
		return 0, fmt.Errorf("failed to fetch neighbor set: %w", err)
	}
	if set == nil {
		s.logger.Info("No neighbor set for product " + productID.String())
		return 0, ErrNeighborsNotFound
	}

	var weightedSum, similaritySum float64
	for _, neighbor := range set.Neighbors {
		rating, err := s.ratings.FindByUserAndProduct(userID, neighbor.NeighborID)
		if err != nil {
			s.logger.Error("Failed to fetch rating for neighbor " + neighbor.NeighborID.String() + ": " + err.Error())
			return 0, fmt.Errorf("failed to fetch rating: %w", err)
		}
		if rating == nil {
			continue
		}

		weightedSum += float64(rating.Score) * neighbor.Similarity
		similaritySum += neighbor.Similarity
	}

	if similaritySum == 0 {
		s.logger.Info("User " + userID.String() + " has rated none of product " + productID.String() + "'s neighbors")
		return 0, ErrInsufficientData
	}

	prediction := weightedSum / similaritySum

	if err := s.predictions.Upsert(&Prediction{UserID: userID, ProductID: productID, Prediction: prediction}); err != nil {
		s.logger.Error("Failed to store prediction for user " + userID.String() + " product " + productID.String() + ": " + err.Error())
		return 0, fmt.Errorf("failed to store prediction: %w", err)
	}

	s.logger.Info("Prediction stored for user " + userID.String() + " product " + productID.String())

	return prediction, nil
}

func (s *service) GetRecommendations(userID uuid.UUID, limit int) ([]*Product, error) {
	if limit < 1 || limit > s.neighborLimit {
		limit = s.displayLimit
	}

	predictions, err := s.predictions.FindByUser(userID)
	if err != nil {
		s.logger.Error("Failed to fetch predictions for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}

	// Cold-start users simply have nothing precomputed yet
	if len(predictions) == 0 {
		return []*Product{}, nil
	}

	ids := lo.Map(predictions, func(p *Prediction, _ int) uuid.UUID {
		return p.ProductID
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	products, err := s.hydrate(ids)
	if err != nil {
		s.logger.Error("Failed to hydrate recommendations for user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Returning " + utils.IntToString(len(products)) + " recommendations for user " + userID.String())

	return products, nil
}

func (s *service) GetSimilarProducts(productID uuid.UUID) ([]*Product, error) {
	set, err := s.neighbors.FindByProduct(productID)
	if err != nil {
		s.logger.Error("Failed to fetch neighbor set for product " + productID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to fetch neighbor set: %w", err)
	}
	if set == nil || len(set.Neighbors) == 0 {
		return nil, ErrNeighborsNotFound
	}

	ids := lo.Map(set.Neighbors, func(e NeighborEntry, _ int) uuid.UUID {
		return e.NeighborID
	})

	return s.hydrate(ids)
}

// hydrate resolves product IDs to catalog entries, preserving ranking order.
// IDs missing from the catalog are skipped.
func (s *service) hydrate(ids []uuid.UUID) ([]*Product, error) {
	products, err := s.catalog.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := lo.KeyBy(products, func(p *Product) uuid.UUID {
		return p.ID
	})

	ordered := make([]*Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			ordered = append(ordered, product)
		}
	}

	return ordered, nil
}
