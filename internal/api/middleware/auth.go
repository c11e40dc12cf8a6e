package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/auth"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

const (
	// LocalUserID is the key to retrieve the gallery owner from context
	LocalUserID = "user_id"
	// LocalUsername is the key to retrieve the caller's username from context
	LocalUsername = "username"
)

// TokenValidator is satisfied by *auth.JWTService
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Auth creates an authentication middleware using JWT bearer tokens.
// WebSocket upgrades may pass the token as ?token= since browsers cannot
// set headers on the handshake.
func Auth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" && isWebSocketUpgrade(c) {
			token = c.Query("token")
		}
		if token == "" {
			return domain.ErrUnauthorized
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			// expired, forged and malformed tokens all look the same to the caller
			return domain.ErrUnauthorized
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)

		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func isWebSocketUpgrade(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("Upgrade"), "websocket")
}

// GetUserID retrieves the authenticated user id from Fiber context
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}
