package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

func TestGalleryService_List(t *testing.T) {
	owner := uuid.New()
	gs := new(MockGalleryStore)
	gs.On("ListByUser", mock.Anything, owner).Return([]domain.Acquaintance{{Name: "Alice"}}, nil)

	got, err := NewGalleryService(gs).List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	failing := new(MockGalleryStore)
	failing.On("ListByUser", mock.Anything, owner).Return(nil, errors.New("timeout"))
	_, err = NewGalleryService(failing).List(context.Background(), owner)
	assert.ErrorContains(t, err, "list gallery: timeout")
}

func TestGalleryService_Remove(t *testing.T) {
	owner, id := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "removed", storeErr: nil},
		{name: "unknown id", storeErr: domain.ErrAcquaintanceNotFound, wantErr: domain.ErrAcquaintanceNotFound},
		{name: "store failure", storeErr: errors.New("timeout"), wantErr: errors.New("delete acquaintance: timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := new(MockGalleryStore)
			gs.On("Delete", mock.Anything, owner, id).Return(tt.storeErr)

			err := NewGalleryService(gs).Remove(context.Background(), owner, id)

			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, domain.ErrAcquaintanceNotFound):
				assert.ErrorIs(t, err, domain.ErrAcquaintanceNotFound)
			default:
				assert.ErrorContains(t, err, tt.wantErr.Error())
			}
			gs.AssertExpectations(t)
		})
	}
}
