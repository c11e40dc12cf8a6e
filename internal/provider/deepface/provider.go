package deepface

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

// jpegQuality used when re-encoding rasters for upload
const jpegQuality = 95

// Provider implements provider.Extractor using the DeepFace API
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// Detect uploads the raster to /represent and converts every returned face
func (p *Provider) Detect(ctx context.Context, img *imagecodec.Raster) ([]provider.Detection, error) {
	data, err := img.EncodeJPEG(jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)

	resp, err := p.client.Represent(ctx, uri)
	if errors.Is(err, ErrNoFaceInResponse) {
		return []provider.Detection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	detections := make([]provider.Detection, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Embedding) == 0 {
			return nil, fmt.Errorf("detect faces: %w", ErrInvalidResponse)
		}

		area := result.FacialArea
		detections = append(detections, provider.Detection{
			BoundingBox: domain.BoundingBox{area.X, area.Y, area.X + area.W, area.Y + area.H},
			Embedding:   result.Embedding,
			Score:       result.FaceConfidence,
		})
	}

	return detections, nil
}

// Ensure Provider implements provider.Extractor
var _ provider.Extractor = (*Provider)(nil)
