package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

const (
	embeddingDimension = 512
	// minFaceSide is the smallest raster side on which a face is "found"
	minFaceSide = 16
)

// Provider implementa provider.Extractor para testes e desenvolvimento.
// Without fixed detections it reports one face covering the whole image,
// with an embedding derived from the pixel data.
type Provider struct {
	detections []provider.Detection
	fixed      bool
}

// New cria uma nova instância do Provider
func New() *Provider {
	return &Provider{}
}

// WithDetections returns a Provider that always answers with the given detections
func WithDetections(detections ...provider.Detection) *Provider {
	return &Provider{detections: detections, fixed: true}
}

// Detect simula detecção de faces
func (p *Provider) Detect(ctx context.Context, img *imagecodec.Raster) ([]provider.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.fixed {
		out := make([]provider.Detection, len(p.detections))
		for i, d := range p.detections {
			out[i] = provider.Detection{
				BoundingBox: d.BoundingBox,
				Embedding:   append([]float64(nil), d.Embedding...),
				Score:       d.Score,
			}
		}
		return out, nil
	}

	if img.Width() < minFaceSide || img.Height() < minFaceSide {
		return []provider.Detection{}, nil
	}

	return []provider.Detection{
		{
			BoundingBox: domain.BoundingBox{0, 0, img.Width(), img.Height()},
			Embedding:   generateEmbedding(img.RGB()),
			Score:       0.99,
		},
	}, nil
}

// generateEmbedding gera embedding determinístico baseado no hash da imagem
func generateEmbedding(pixels []byte) []float64 {
	hash := sha256.Sum256(pixels)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		//nolint:gosec // idx is always < hashLen due to modulo operation
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	if norm == 0 {
		return embedding
	}

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.Extractor = (*Provider)(nil)
