package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
)

// Extractor turns a decoded image into face detections with embeddings.
// Implementations must be safe for concurrent use.
type Extractor interface {
	// Detect returns one Detection per face found, in the model's order.
	// An image without faces yields an empty slice and a nil error.
	Detect(ctx context.Context, img *imagecodec.Raster) ([]Detection, error)
}

// Detection is a single face found by an Extractor
type Detection struct {
	BoundingBox domain.BoundingBox `json:"bbox"`
	Embedding   []float64          `json:"embedding"`
	Score       float64            `json:"score"` // detector confidence, 0 when the model does not report one
}

// ExtractorFunc adapts a plain function to the Extractor interface
type ExtractorFunc func(ctx context.Context, img *imagecodec.Raster) ([]Detection, error)

// Detect calls f(ctx, img)
func (f ExtractorFunc) Detect(ctx context.Context, img *imagecodec.Raster) ([]Detection, error) {
	return f(ctx, img)
}
