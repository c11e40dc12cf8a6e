package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/match"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/repository"
)

type RecognitionService struct {
	gallery   repository.GalleryStore
	extractor provider.Extractor
	threshold float64
}

func NewRecognitionService(gallery repository.GalleryStore, extractor provider.Extractor) *RecognitionService {
	return &RecognitionService{
		gallery:   gallery,
		extractor: extractor,
		threshold: match.DefaultThreshold,
	}
}

// WithThreshold sets the threshold used when callers do not pass one
func (s *RecognitionService) WithThreshold(threshold float64) *RecognitionService {
	s.threshold = threshold
	return s
}

// Threshold returns the default match threshold
func (s *RecognitionService) Threshold() float64 {
	return s.threshold
}

// Recognize identifies every face in payload against the owner's gallery.
// Results follow the extractor's detection order; an image without faces
// yields an empty slice.
func (s *RecognitionService) Recognize(ctx context.Context, owner uuid.UUID, payload string, threshold float64) ([]domain.FaceResult, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, domain.ErrInvalidThreshold
	}

	detections, err := detect(ctx, s.extractor, payload)
	if err != nil {
		return nil, err
	}

	results := make([]domain.FaceResult, 0, len(detections))
	if len(detections) == 0 {
		return results, nil
	}

	gallery, err := s.gallery.ListByUser(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("user %s: load gallery: %w", owner, err)
	}

	for _, d := range detections {
		results = append(results, toFaceResult(d.BoundingBox, match.Match(d.Embedding, gallery, threshold)))
	}

	return results, nil
}

func toFaceResult(box domain.BoundingBox, m match.Result) domain.FaceResult {
	result := domain.FaceResult{
		BoundingBox: box,
		Name:        m.Name,
		Confidence:  m.Confidence,
		Matched:     m.Matched,
	}

	if m.Matched {
		relationship := m.Relationship
		id := m.AcquaintanceID
		result.Relationship = &relationship
		result.AcquaintanceID = &id
	}

	return result
}
