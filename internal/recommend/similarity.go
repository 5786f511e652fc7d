package recommend

import (
	"math"

	"github.com/google/uuid"
)

// CosineSimilarity computes the cosine similarity between two products from
// their rating vectors, using only users who rated both. Each slice must hold
// the ratings of exactly one product. Returns a value in [-1, 1], or 0 when
// either slice is empty or no user rated both products.
func CosineSimilarity(ratingsA, ratingsB []Rating) float64 {
	if len(ratingsA) == 0 || len(ratingsB) == 0 {
		return 0
	}

	// userID -> productID -> score over the union of both rating sets
	byUser := make(map[uuid.UUID]map[uuid.UUID]int, len(ratingsA)+len(ratingsB))
	for _, r := range append(append([]Rating{}, ratingsA...), ratingsB...) {
		if byUser[r.UserID] == nil {
			byUser[r.UserID] = make(map[uuid.UUID]int, 2)
		}
		byUser[r.UserID][r.ProductID] = r.Score
	}

	productA := ratingsA[0].ProductID
	productB := ratingsB[0].ProductID

	var dotProduct, magnitudeA, magnitudeB float64
	for _, scores := range byUser {
		scoreA, ratedA := scores[productA]
		scoreB, ratedB := scores[productB]
		if !ratedA || !ratedB {
			continue
		}

		dotProduct += float64(scoreA) * float64(scoreB)
		magnitudeA += float64(scoreA) * float64(scoreA)
		magnitudeB += float64(scoreB) * float64(scoreB)
	}

	if magnitudeA == 0 || magnitudeB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(magnitudeA) * math.Sqrt(magnitudeB))
}
