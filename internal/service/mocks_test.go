package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

type MockGalleryStore struct {
	mock.Mock
}

func (m *MockGalleryStore) Create(ctx context.Context, a *domain.Acquaintance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockGalleryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Acquaintance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Acquaintance), args.Error(1)
}

func (m *MockGalleryStore) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Acquaintance, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acquaintance), args.Error(1)
}

func (m *MockGalleryStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Detect(ctx context.Context, img *imagecodec.Raster) ([]provider.Detection, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Detection), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// pngPayload returns a data-URI payload of a small solid PNG
func pngPayload(t *testing.T, fill uint8) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: fill, G: uint8(x * 4), B: uint8(y * 4), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func detection(box domain.BoundingBox, embedding ...float64) provider.Detection {
	return provider.Detection{BoundingBox: box, Embedding: embedding}
}
