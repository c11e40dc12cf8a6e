package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/match"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

func TestRecognitionService_Recognize(t *testing.T) {
	owner := uuid.New()
	alice := domain.Acquaintance{ID: uuid.New(), UserID: owner, Name: "Alice", Relationship: "sister", Embedding: []float64{1, 0, 0}}
	bob := domain.Acquaintance{ID: uuid.New(), UserID: owner, Name: "Bob", Embedding: []float64{0, 1, 0}}

	tests := []struct {
		name       string
		payload    func(t *testing.T) string
		threshold  float64
		setupMocks func(*MockGalleryStore, *MockExtractor)
		wantErr    error
		check      func(t *testing.T, results []domain.FaceResult)
	}{
		{
			name:      "matches every face in extractor order",
			payload:   func(t *testing.T) string { return pngPayload(t, 1) },
			threshold: match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {
				ex.On("Detect", mock.Anything, mock.Anything).Return([]provider.Detection{
					detection(domain.BoundingBox{0, 0, 10, 10}, 0, 1, 0),
					detection(domain.BoundingBox{10, 10, 20, 20}, 0, 0, 1),
					detection(domain.BoundingBox{20, 20, 30, 30}, 1, 0, 0),
				}, nil)
				gs.On("ListByUser", mock.Anything, owner).Return([]domain.Acquaintance{alice, bob}, nil).Once()
			},
			check: func(t *testing.T, results []domain.FaceResult) {
				require.Len(t, results, 3)

				assert.Equal(t, "Bob", results[0].Name)
				assert.True(t, results[0].Matched)
				require.NotNil(t, results[0].Relationship)
				assert.Equal(t, "", *results[0].Relationship)
				assert.Equal(t, bob.ID, *results[0].AcquaintanceID)

				assert.Equal(t, domain.UnknownName, results[1].Name)
				assert.False(t, results[1].Matched)
				assert.Nil(t, results[1].Relationship)
				assert.Nil(t, results[1].AcquaintanceID)
				assert.Equal(t, 0.0, results[1].Confidence)
				assert.Equal(t, domain.BoundingBox{10, 10, 20, 20}, results[1].BoundingBox)

				assert.Equal(t, "Alice", results[2].Name)
				assert.Equal(t, "sister", *results[2].Relationship)
				assert.InDelta(t, 1.0, results[2].Confidence, 1e-9)
			},
		},
		{
			name:      "no faces yields empty result without reading gallery",
			payload:   func(t *testing.T) string { return pngPayload(t, 1) },
			threshold: match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {
				ex.On("Detect", mock.Anything, mock.Anything).Return([]provider.Detection{}, nil)
			},
			check: func(t *testing.T, results []domain.FaceResult) {
				assert.NotNil(t, results)
				assert.Empty(t, results)
			},
		},
		{
			name:       "empty payload",
			payload:    func(t *testing.T) string { return "  " },
			threshold:  match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {},
			wantErr:    domain.ErrMissingField,
		},
		{
			name:       "undecodable payload",
			payload:    func(t *testing.T) string { return "data:image/png;base64,bm90IGFuIGltYWdl" },
			threshold:  match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {},
			wantErr:    domain.ErrInvalidImage,
		},
		{
			name:       "malformed base64",
			payload:    func(t *testing.T) string { return "!!!not base64!!!" },
			threshold:  match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {},
			wantErr:    domain.ErrInvalidImage,
		},
		{
			name:       "threshold above one",
			payload:    func(t *testing.T) string { return pngPayload(t, 1) },
			threshold:  1.5,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {},
			wantErr:    domain.ErrInvalidThreshold,
		},
		{
			name:       "threshold is NaN",
			payload:    func(t *testing.T) string { return pngPayload(t, 1) },
			threshold:  math.NaN(),
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {},
			wantErr:    domain.ErrInvalidThreshold,
		},
		{
			name:      "extractor failure",
			payload:   func(t *testing.T) string { return pngPayload(t, 1) },
			threshold: match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {
				ex.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("model crashed"))
			},
			wantErr: domain.ErrExtractorFailure,
		},
		{
			name:      "cancellation passes through",
			payload:   func(t *testing.T) string { return pngPayload(t, 1) },
			threshold: match.DefaultThreshold,
			setupMocks: func(gs *MockGalleryStore, ex *MockExtractor) {
				ex.On("Detect", mock.Anything, mock.Anything).Return(nil, context.Canceled)
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := new(MockGalleryStore)
			ex := new(MockExtractor)
			tt.setupMocks(gs, ex)

			svc := NewRecognitionService(gs, ex)
			results, err := svc.Recognize(context.Background(), owner, tt.payload(t), tt.threshold)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, results)
			} else {
				require.NoError(t, err)
				tt.check(t, results)
			}

			gs.AssertExpectations(t)
			ex.AssertExpectations(t)
			gs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRecognitionService_GalleryError(t *testing.T) {
	gs := new(MockGalleryStore)
	ex := new(MockExtractor)
	ex.On("Detect", mock.Anything, mock.Anything).Return([]provider.Detection{detection(domain.BoundingBox{}, 1)}, nil)
	gs.On("ListByUser", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewRecognitionService(gs, ex).Recognize(context.Background(), uuid.New(), pngPayload(t, 1), 0.4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load gallery: db down")
}

func TestRecognitionService_Threshold(t *testing.T) {
	svc := NewRecognitionService(new(MockGalleryStore), new(MockExtractor))
	assert.Equal(t, match.DefaultThreshold, svc.Threshold())
	assert.Equal(t, 0.6, svc.WithThreshold(0.6).Threshold())
}
