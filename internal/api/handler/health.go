package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/database"
)

type HealthHandler struct {
	db database.Pinger
}

// NewHealthHandler builds the probes; db may be nil when running on the memory store
func NewHealthHandler(db database.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: "0.1.0",
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db != nil {
		if err := database.HealthCheck(c.UserContext(), h.db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
				Status: "unavailable",
				Error:  "database unreachable",
			})
		}
	}

	return c.JSON(HealthResponse{
		Status: "ready",
	})
}
