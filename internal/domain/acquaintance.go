package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownName is reported for faces that match no acquaintance.
const UnknownName = "Unknown"

// Acquaintance is a person enrolled in a user's gallery.
// Embeddings are captured once at enrollment and never updated.
type Acquaintance struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Embedding    []float64 `json:"-"`
	Image        string    `json:"image"`
	AddedAt      time.Time `json:"added_at"`
}

// NormalizeName applies the gallery naming policy: surrounding whitespace is
// dropped and the remainder is compared case-sensitively.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// BoundingBox is a face region in pixel coordinates, [x1, y1, x2, y2].
type BoundingBox [4]int

// FaceResult is the outcome of matching one detected face.
type FaceResult struct {
	BoundingBox    BoundingBox `json:"bbox"`
	Name           string      `json:"name"`
	Relationship   *string     `json:"relation,omitempty"`
	Confidence     float64     `json:"confidence"`
	Matched        bool        `json:"matched"`
	AcquaintanceID *uuid.UUID  `json:"acquaintance_id,omitempty"`
}
