package handler

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
)

func newAcquaintanceApp(userID uuid.UUID, enroller *MockEnroller, gallery *MockGallery, publisher events.Publisher) *fiber.App {
	h := NewAcquaintanceHandler(enroller, gallery, publisher, testLogger())
	return newTestApp(userID, func(app *fiber.App) {
		app.Post("/api/acquaintances/add", h.Add)
		app.Post("/api/acquaintances", h.Add)
		app.Get("/api/acquaintances", h.List)
		app.Delete("/api/acquaintances/:id", h.Delete)
	})
}

func TestAcquaintanceHandler_Add(t *testing.T) {
	userID := uuid.New()
	created := &domain.Acquaintance{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Alice",
		Relationship: "sister",
		Image:        "img",
		AddedAt:      time.Now(),
	}

	tests := []struct {
		name       string
		path       string
		body       interface{}
		setupMock  func(m *MockEnroller)
		wantStatus int
		wantCode   string
		wantEvent  bool
	}{
		{
			name: "enrolled",
			path: "/api/acquaintances/add",
			body: AddAcquaintanceRequest{Name: "Alice", Relationship: "sister", Image: "img"},
			setupMock: func(m *MockEnroller) {
				m.On("Enroll", mock.Anything, userID, "Alice", "sister", "img").Return(created, nil)
			},
			wantStatus: 201,
			wantEvent:  true,
		},
		{
			name: "alias route",
			path: "/api/acquaintances",
			body: AddAcquaintanceRequest{Name: "Alice", Relationship: "sister", Image: "img"},
			setupMock: func(m *MockEnroller) {
				m.On("Enroll", mock.Anything, userID, "Alice", "sister", "img").Return(created, nil)
			},
			wantStatus: 201,
			wantEvent:  true,
		},
		{
			name: "duplicate name",
			path: "/api/acquaintances/add",
			body: AddAcquaintanceRequest{Name: "Alice", Image: "img"},
			setupMock: func(m *MockEnroller) {
				m.On("Enroll", mock.Anything, userID, "Alice", "", "img").Return(nil, domain.ErrDuplicateName)
			},
			wantStatus: 409,
			wantCode:   "DUPLICATE_NAME",
		},
		{
			name: "no face",
			path: "/api/acquaintances/add",
			body: AddAcquaintanceRequest{Name: "Alice", Image: "img"},
			setupMock: func(m *MockEnroller) {
				m.On("Enroll", mock.Anything, userID, "Alice", "", "img").Return(nil, domain.ErrNoFaceDetected)
			},
			wantStatus: 422,
			wantCode:   "NO_FACE_DETECTED",
		},
		{
			name: "missing field",
			path: "/api/acquaintances/add",
			body: AddAcquaintanceRequest{Image: "img"},
			setupMock: func(m *MockEnroller) {
				m.On("Enroll", mock.Anything, userID, "", "", "img").Return(nil, domain.ErrMissingField)
			},
			wantStatus: 400,
			wantCode:   "MISSING_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enroller := &MockEnroller{}
			tt.setupMock(enroller)
			publisher := &recordingPublisher{}

			app := newAcquaintanceApp(userID, enroller, &MockGallery{}, publisher)

			resp, err := app.Test(jsonRequest(t, "POST", tt.path, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp))
				assert.Empty(t, publisher.events)
				return
			}

			var body AcquaintanceResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, created.ID.String(), body.ID)
			assert.Equal(t, "Alice", body.Name)
			assert.Equal(t, "sister", body.Relationship)

			if tt.wantEvent {
				require.Len(t, publisher.events, 1)
				assert.Equal(t, events.TypeAcquaintanceEnrolled, publisher.events[0].Type)
				assert.Equal(t, userID, publisher.events[0].UserID)
			}
			enroller.AssertExpectations(t)
		})
	}
}

func TestAcquaintanceHandler_AddSurvivesPublishFailure(t *testing.T) {
	userID := uuid.New()
	enroller := &MockEnroller{}
	enroller.On("Enroll", mock.Anything, userID, "Bob", "", "img").
		Return(&domain.Acquaintance{ID: uuid.New(), Name: "Bob"}, nil)

	app := newAcquaintanceApp(userID, enroller, &MockGallery{}, &recordingPublisher{err: errors.New("nats down")})

	resp, err := app.Test(jsonRequest(t, "POST", "/api/acquaintances/add", AddAcquaintanceRequest{Name: "Bob", Image: "img"}))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestAcquaintanceHandler_List(t *testing.T) {
	userID := uuid.New()
	added := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the gallery without embeddings", func(t *testing.T) {
		gallery := &MockGallery{}
		gallery.On("List", mock.Anything, userID).Return([]domain.Acquaintance{
			{ID: uuid.New(), UserID: userID, Name: "Alice", Relationship: "sister", Image: "img-a", Embedding: []float64{1, 2}, AddedAt: added},
			{ID: uuid.New(), UserID: userID, Name: "Bob", Image: "img-b", Embedding: []float64{3, 4}, AddedAt: added},
		}, nil)

		app := newAcquaintanceApp(userID, &MockEnroller{}, gallery, nil)

		resp, err := app.Test(jsonRequest(t, "GET", "/api/acquaintances", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 2)

		assert.Equal(t, "Alice", body[0]["name"])
		assert.Equal(t, "sister", body[0]["relationship"])
		assert.Equal(t, "img-a", body[0]["image"])
		assert.Equal(t, "2024-05-01T12:00:00Z", body[0]["added_at"])
		assert.NotContains(t, body[0], "embedding")
		assert.NotContains(t, body[0], "user_id")
	})

	t.Run("empty gallery is an empty array", func(t *testing.T) {
		gallery := &MockGallery{}
		gallery.On("List", mock.Anything, userID).Return([]domain.Acquaintance{}, nil)

		app := newAcquaintanceApp(userID, &MockEnroller{}, gallery, nil)

		resp, err := app.Test(jsonRequest(t, "GET", "/api/acquaintances", nil))
		require.NoError(t, err)

		var body []interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body)
		assert.Empty(t, body)
	})
}

func TestAcquaintanceHandler_Delete(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		setupMock  func(m *MockGallery)
		wantStatus int
		wantCode   string
	}{
		{
			name: "deleted",
			path: "/api/acquaintances/" + id.String(),
			setupMock: func(m *MockGallery) {
				m.On("Remove", mock.Anything, userID, id).Return(nil)
			},
			wantStatus: 200,
		},
		{
			name: "unknown id",
			path: "/api/acquaintances/" + id.String(),
			setupMock: func(m *MockGallery) {
				m.On("Remove", mock.Anything, userID, id).Return(domain.ErrAcquaintanceNotFound)
			},
			wantStatus: 404,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "malformed id",
			path:       "/api/acquaintances/not-a-uuid",
			setupMock:  func(m *MockGallery) {},
			wantStatus: 404,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gallery := &MockGallery{}
			tt.setupMock(gallery)
			publisher := &recordingPublisher{}

			app := newAcquaintanceApp(userID, &MockEnroller{}, gallery, publisher)

			resp, err := app.Test(jsonRequest(t, "DELETE", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp))
				assert.Empty(t, publisher.events)
				return
			}

			var body MessageResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Message)

			require.Len(t, publisher.events, 1)
			assert.Equal(t, events.TypeAcquaintanceDeleted, publisher.events[0].Type)
			gallery.AssertExpectations(t)
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ambiguous_face", outcome(domain.ErrAmbiguousFace.WithError(errors.New("2 faces"))))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}
