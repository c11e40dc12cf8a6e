package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/observability"
)

// AcquaintanceHandler serves gallery management
type AcquaintanceHandler struct {
	enroller  Enroller
	gallery   Gallery
	publisher events.Publisher
	logger    *slog.Logger
}

func NewAcquaintanceHandler(enroller Enroller, gallery Gallery, publisher events.Publisher, logger *slog.Logger) *AcquaintanceHandler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AcquaintanceHandler{
		enroller:  enroller,
		gallery:   gallery,
		publisher: publisher,
		logger:    logger,
	}
}

type AddAcquaintanceRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Image        string `json:"image"`
}

type AcquaintanceResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Add POST /api/acquaintances/add - enroll one person from a single-face image
func (h *AcquaintanceHandler) Add(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req AddAcquaintanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	a, err := h.enroller.Enroll(c.UserContext(), userID, req.Name, req.Relationship, req.Image)
	if err != nil {
		observability.Enrollments.WithLabelValues(outcome(err)).Inc()
		return err
	}
	observability.Enrollments.WithLabelValues("created").Inc()

	resp := AcquaintanceResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Relationship: a.Relationship,
	}
	publish(h.publisher, h.logger, events.New(events.TypeAcquaintanceEnrolled, userID, resp))

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List GET /api/acquaintances
func (h *AcquaintanceHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	acquaintances, err := h.gallery.List(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(acquaintances)
}

// Delete DELETE /api/acquaintances/:id
func (h *AcquaintanceHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	// an id that does not parse cannot be in anyone's gallery
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrAcquaintanceNotFound
	}

	if err := h.gallery.Remove(c.UserContext(), userID, id); err != nil {
		return err
	}

	publish(h.publisher, h.logger, events.New(events.TypeAcquaintanceDeleted, userID, fiber.Map{"id": id.String()}))

	return c.JSON(MessageResponse{Message: "Acquaintance deleted"})
}

// outcome labels a failed enrollment by its error code
func outcome(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}
