package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/auth"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

func newAuthTestApp(validator TokenValidator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testLogger())})
	app.Use(Auth(validator))
	app.Get("/test", func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.SendString(userID.String())
	})
	return app
}

func TestAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "acquaint-test", time.Hour)
	userID := uuid.New()

	validToken, err := jwtService.GenerateToken(userID, "alice")
	require.NoError(t, err)

	otherIssuer, err := auth.NewJWTService("test-secret", "someone-else", time.Hour).GenerateToken(userID, "alice")
	require.NoError(t, err)

	expired, err := auth.NewJWTService("test-secret", "acquaint-test", -time.Minute).GenerateToken(userID, "alice")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		query          string
		upgrade        bool
		expectedStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + validToken, expectedStatus: 200},
		{name: "missing Authorization header", expectedStatus: 401},
		{name: "invalid Bearer format", authHeader: "Basic abc123", expectedStatus: 401},
		{name: "empty Bearer token", authHeader: "Bearer ", expectedStatus: 401},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", expectedStatus: 401},
		{name: "wrong issuer", authHeader: "Bearer " + otherIssuer, expectedStatus: 401},
		{name: "expired token", authHeader: "Bearer " + expired, expectedStatus: 401},
		{name: "query token ignored without upgrade", query: "?token=" + validToken, expectedStatus: 401},
		{name: "query token on websocket upgrade", query: "?token=" + validToken, upgrade: true, expectedStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(jwtService)

			req := httptest.NewRequest("GET", "/test"+tt.query, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.upgrade {
				req.Header.Set("Upgrade", "websocket")
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == 200 {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, userID.String(), string(body))
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		_, err := GetUserID(c)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		c.Locals(LocalUserID, uuid.Nil)
		_, err = GetUserID(c)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
}
