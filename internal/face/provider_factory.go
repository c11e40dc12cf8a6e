package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/config"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider/mock"
)

// ProviderType defines supported face extractor types
type ProviderType string

const (
	// ProviderTypeDeepFace calls a DeepFace HTTP service
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeMock derives embeddings from pixel hashes (dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypeDlib runs dlib in-process; needs a binary built with -tags dlib
	ProviderTypeDlib ProviderType = "dlib"
)

// NewExtractor creates the Extractor selected by PROVIDER_TYPE.
// The returned cleanup releases native resources and is never nil.
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface", "mock" or "dlib" (default: "deepface")
//   - DEEPFACE_URL, DEEPFACE_MODEL, DEEPFACE_DETECTOR, DEEPFACE_TIMEOUT
//   - DLIB_MODELS_DIR: directory holding the dlib .dat models
func NewExtractor(cfg *config.Config) (provider.Extractor, func(), error) {
	providerType := ProviderType(cfg.ProviderType)

	switch providerType {
	case ProviderTypeDeepFace, "":
		return createDeepFaceProvider(cfg), func() {}, nil

	case ProviderTypeMock:
		return mock.New(), func() {}, nil

	case ProviderTypeDlib:
		return createDlibProvider(cfg)

	default:
		return nil, nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.ProviderType, ProviderTypeDeepFace, ProviderTypeMock, ProviderTypeDlib)
	}
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.Extractor {
	deepfaceConfig := deepface.DefaultConfig()

	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		deepfaceConfig.Model = cfg.DeepFaceModel
	}
	if cfg.DeepFaceDetector != "" {
		deepfaceConfig.Detector = cfg.DeepFaceDetector
	}
	if cfg.DeepFaceTimeout > 0 {
		deepfaceConfig.Timeout = cfg.DeepFaceTimeout
	}

	return deepface.NewProvider(deepfaceConfig)
}
