package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/observability"
)

const frameTimeout = 30 * time.Second

// Recognizer is satisfied by *service.RecognitionService
type Recognizer interface {
	Recognize(ctx context.Context, owner uuid.UUID, payload string, threshold float64) ([]domain.FaceResult, error)
	Threshold() float64
}

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	userID     uuid.UUID
	send       chan []byte
	recognizer Recognizer
	logger     *slog.Logger
}

// ReadPump handles frames until the socket closes. Frames are processed one at a
// time, so a client cannot queue more work than the extractor can serve.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
		reply := c.handleMessage(ctx, raw)
		cancel()

		if reply != nil && !c.hub.deliver(c, reply) {
			c.logger.Debug("websocket reply dropped", slog.String("user_id", c.userID.String()))
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// handleMessage turns one inbound message into the JSON reply to send back
func (c *Client) handleMessage(ctx context.Context, raw []byte) []byte {
	var msg FrameMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorReply(domain.ErrBadRequest)
	}

	if msg.Type != MessageFrame {
		return errorReply(domain.ErrBadRequest.WithError(errors.New("unsupported message type")))
	}

	threshold := c.recognizer.Threshold()
	if msg.Threshold != nil {
		threshold = *msg.Threshold
	}

	faces, err := c.recognizer.Recognize(ctx, c.userID, msg.Image, threshold)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return errorReply(appErr)
		}
		c.logger.Error("websocket frame failed",
			slog.String("user_id", c.userID.String()),
			slog.Any("error", err),
		)
		return errorReply(domain.ErrInternal)
	}

	observability.RecordRecognition("ws", faces)

	reply, _ := json.Marshal(RecognitionMessage{
		Type:  MessageRecognition,
		Faces: faces,
		Count: len(faces),
	})
	return reply
}

func errorReply(appErr *domain.AppError) []byte {
	reply, _ := json.Marshal(ErrorMessage{
		Type:    MessageError,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
	return reply
}
