package ws

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Handler serves the live recognition socket. The auth middleware must have
// stored the caller's id under "user_id" before the upgrade.
func Handler(hub *Hub, recognizer Recognizer, logger *slog.Logger) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userIDValue := c.Locals("user_id")
		if userIDValue == nil {
			_ = c.Close()
			return
		}

		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			_ = c.Close()
			return
		}

		client := &Client{
			hub:        hub,
			conn:       c,
			userID:     userID,
			send:       make(chan []byte, 256),
			recognizer: recognizer,
			logger:     logger,
		}

		if !hub.join(client) {
			_ = c.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}

func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}
