package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/service"
)

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, owner uuid.UUID, payload string, threshold float64) ([]domain.FaceResult, error) {
	args := m.Called(ctx, owner, payload, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FaceResult), args.Error(1)
}

func (m *MockRecognizer) Threshold() float64 {
	return 0.4
}

type MockEnroller struct {
	mock.Mock
}

func (m *MockEnroller) Enroll(ctx context.Context, owner uuid.UUID, name, relationship, payload string) (*domain.Acquaintance, error) {
	args := m.Called(ctx, owner, name, relationship, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acquaintance), args.Error(1)
}

type MockGallery struct {
	mock.Mock
}

func (m *MockGallery) List(ctx context.Context, owner uuid.UUID) ([]domain.Acquaintance, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Acquaintance), args.Error(1)
}

func (m *MockGallery) Remove(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Register(ctx context.Context, reg domain.Registration) (*service.Session, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApp mounts routes behind a fake auth step that authenticates userID
func newTestApp(userID uuid.UUID, mount func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(testLogger())})
	if userID != uuid.Nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.LocalUserID, userID)
			return c.Next()
		})
	}
	mount(app)
	return app
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}
