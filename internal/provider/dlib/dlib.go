//go:build dlib

// Package dlib runs face detection and 128-d descriptor extraction in-process
// with dlib through github.com/Kagami/go-face.
package dlib

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kagami/go-face"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

const jpegQuality = 95

// Provider implements provider.Extractor on top of a dlib recognizer.
// The recognizer is not safe for concurrent use, so calls are serialized.
type Provider struct {
	mu         sync.Mutex
	recognizer *face.Recognizer
}

// NewProvider loads the dlib models from modelsDir
// (shape_predictor_5_face_landmarks.dat, dlib_face_recognition_resnet_model_v1.dat,
// mmod_human_face_detector.dat).
func NewProvider(modelsDir string) (*Provider, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("load dlib models from %s: %w", modelsDir, err)
	}
	return &Provider{recognizer: rec}, nil
}

// Detect encodes the raster as JPEG and runs the recognizer on it
func (p *Provider) Detect(ctx context.Context, img *imagecodec.Raster) ([]provider.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := img.EncodeJPEG(jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	p.mu.Lock()
	faces, err := p.recognizer.Recognize(data)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	detections := make([]provider.Detection, 0, len(faces))
	for _, f := range faces {
		embedding := make([]float64, len(f.Descriptor))
		for i, v := range f.Descriptor {
			embedding[i] = float64(v)
		}

		r := f.Rectangle
		detections = append(detections, provider.Detection{
			BoundingBox: domain.BoundingBox{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y},
			Embedding:   embedding,
		})
	}

	return detections, nil
}

// Close frees the dlib models
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recognizer.Close()
}

var _ provider.Extractor = (*Provider)(nil)
