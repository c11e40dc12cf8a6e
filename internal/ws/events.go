package ws

import (
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

type MessageType string

const (
	// MessageFrame is sent by the client: one camera frame to recognize
	MessageFrame MessageType = "frame"
	// MessageRecognition answers a frame
	MessageRecognition MessageType = "recognition"
	// MessageError answers a frame that could not be processed
	MessageError MessageType = "error"
)

// FrameMessage is a camera frame pushed by the client
type FrameMessage struct {
	Type      MessageType `json:"type"`
	Image     string      `json:"image"`
	Threshold *float64    `json:"threshold,omitempty"`
}

type RecognitionMessage struct {
	Type  MessageType         `json:"type"`
	Faces []domain.FaceResult `json:"faces"`
	Count int                 `json:"count"`
}

type ErrorMessage struct {
	Type    MessageType `json:"type"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}
