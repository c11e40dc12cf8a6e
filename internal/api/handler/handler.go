package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
)

const publishTimeout = 2 * time.Second

// Recognizer is satisfied by *service.RecognitionService
type Recognizer interface {
	Recognize(ctx context.Context, owner uuid.UUID, payload string, threshold float64) ([]domain.FaceResult, error)
	Threshold() float64
}

// Enroller is satisfied by *service.EnrollmentService
type Enroller interface {
	Enroll(ctx context.Context, owner uuid.UUID, name, relationship, payload string) (*domain.Acquaintance, error)
}

// Gallery is satisfied by *service.GalleryService
type Gallery interface {
	List(ctx context.Context, owner uuid.UUID) ([]domain.Acquaintance, error)
	Remove(ctx context.Context, owner, id uuid.UUID) error
}

// parseBody decodes a JSON body, reporting malformed input as BAD_REQUEST
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	return nil
}

// publish fans an event out best-effort; a failed publish never fails the request
func publish(publisher events.Publisher, logger *slog.Logger, event events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("user_id", event.UserID.String()),
			slog.Any("error", err),
		)
	}
}
