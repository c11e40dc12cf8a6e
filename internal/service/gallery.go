package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/repository"
)

type GalleryService struct {
	gallery repository.GalleryStore
}

func NewGalleryService(gallery repository.GalleryStore) *GalleryService {
	return &GalleryService{gallery: gallery}
}

// List returns the owner's acquaintances in insertion order
func (s *GalleryService) List(ctx context.Context, owner uuid.UUID) ([]domain.Acquaintance, error) {
	gallery, err := s.gallery.ListByUser(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("user %s: list gallery: %w", owner, err)
	}
	return gallery, nil
}

// Remove deletes one of the owner's acquaintances.
// Ids that do not exist or belong to another user yield NotFound.
func (s *GalleryService) Remove(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.gallery.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, domain.ErrAcquaintanceNotFound) {
			return domain.ErrAcquaintanceNotFound
		}
		return fmt.Errorf("user %s: delete acquaintance: %w", owner, err)
	}
	return nil
}
