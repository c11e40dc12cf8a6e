package service

import (
	"context"
	"errors"
	"strings"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

var errImageRequired = errors.New("image is required")

// detect decodes payload and runs the extractor on it.
// Payload and decode problems surface as MissingField / InvalidImage,
// extractor problems as ExtractorFailure. Context errors are returned as is.
func detect(ctx context.Context, extractor provider.Extractor, payload string) ([]provider.Detection, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, domain.ErrMissingField.WithError(errImageRequired)
	}

	raster, err := imagecodec.Decode(payload)
	if err != nil {
		return nil, err
	}

	detections, err := extractor.Detect(ctx, raster)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, domain.ErrExtractorFailure.WithError(err)
	}

	return detections, nil
}
