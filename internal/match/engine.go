// Package match finds the acquaintance whose embedding best matches a query.
package match

import (
	"math"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// DefaultThreshold is the minimum similarity a match has to exceed
const DefaultThreshold = 0.4

// Result is the outcome of matching one embedding against a gallery
type Result struct {
	Matched        bool
	AcquaintanceID uuid.UUID
	Name           string
	Relationship   string
	Confidence     float64
}

// Unmatched is returned when nothing in the gallery clears the threshold
func Unmatched() Result {
	return Result{Name: domain.UnknownName}
}

// CosineSimilarity calculates the cosine similarity between two embedding vectors.
// Returns a value between -1.0 (opposite) and 1.0 (identical), or 0 when the
// vectors differ in length or either has zero norm.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Match compares query against every gallery entry and returns the entry with
// the highest similarity if it is strictly above threshold. Ties keep the
// entry that comes first in gallery order. Entries whose embedding dimension
// differs from the query are never candidates.
func Match(query []float64, gallery []domain.Acquaintance, threshold float64) Result {
	best := -1
	bestScore := math.Inf(-1)

	for i := range gallery {
		if len(gallery[i].Embedding) != len(query) {
			continue
		}

		score := CosineSimilarity(query, gallery[i].Embedding)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || !(bestScore > threshold) {
		return Unmatched()
	}

	a := gallery[best]
	return Result{
		Matched:        true,
		AcquaintanceID: a.ID,
		Name:           a.Name,
		Relationship:   a.Relationship,
		Confidence:     bestScore,
	}
}
