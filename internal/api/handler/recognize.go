package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/observability"
)

type RecognizeHandler struct {
	recognizer Recognizer
}

func NewRecognizeHandler(recognizer Recognizer) *RecognizeHandler {
	return &RecognizeHandler{recognizer: recognizer}
}

type RecognizeRequest struct {
	Image     string   `json:"image"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type RecognizeResponse struct {
	Faces []domain.FaceResult `json:"faces"`
	Count int                 `json:"count"`
}

// Recognize POST /api/recognize - identify every face in one image
func (h *RecognizeHandler) Recognize(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req RecognizeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	threshold := h.recognizer.Threshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	faces, err := h.recognizer.Recognize(c.UserContext(), userID, req.Image, threshold)
	if err != nil {
		return err
	}

	observability.RecordRecognition("http", faces)

	return c.JSON(RecognizeResponse{
		Faces: faces,
		Count: len(faces),
	})
}
