package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/repository"
)

var errNameRequired = errors.New("name is required")

type EnrollmentService struct {
	gallery   repository.GalleryStore
	extractor provider.Extractor
}

func NewEnrollmentService(gallery repository.GalleryStore, extractor provider.Extractor) *EnrollmentService {
	return &EnrollmentService{
		gallery:   gallery,
		extractor: extractor,
	}
}

// Enroll adds a new acquaintance to the owner's gallery.
// The image must contain exactly one face and the trimmed name must not be in
// use by the owner. Nothing is written unless every check passes.
func (s *EnrollmentService) Enroll(ctx context.Context, owner uuid.UUID, name, relationship, payload string) (*domain.Acquaintance, error) {
	name = domain.NormalizeName(name)
	relationship = strings.TrimSpace(relationship)
	if name == "" {
		return nil, domain.ErrMissingField.WithError(errNameRequired)
	}

	detections, err := detect(ctx, s.extractor, payload)
	if err != nil {
		return nil, err
	}

	if len(detections) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	if len(detections) > 1 {
		return nil, domain.ErrAmbiguousFace
	}

	_, err = s.gallery.GetByName(ctx, owner, name)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateName
	case !errors.Is(err, domain.ErrAcquaintanceNotFound):
		return nil, fmt.Errorf("user %s: lookup name: %w", owner, err)
	}

	acquaintance := &domain.Acquaintance{
		ID:           uuid.New(),
		UserID:       owner,
		Name:         name,
		Relationship: relationship,
		Embedding:    append([]float64(nil), detections[0].Embedding...),
		Image:        payload,
	}

	if err := s.gallery.Create(ctx, acquaintance); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("user %s: create acquaintance: %w", owner, err)
	}

	return acquaintance, nil
}
