package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store types
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	// Server
	Port        int      `envconfig:"PORT" default:"5000"`
	Environment string   `envconfig:"ENV" default:"development"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	BodyLimitMB int      `envconfig:"BODY_LIMIT_MB" default:"16"`
	LogLevel    string   `envconfig:"LOG_LEVEL"`

	// Storage
	StoreType     string `envconfig:"STORE_TYPE" default:"postgres"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"false"`

	// Security
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"15m"`

	// Provider
	ProviderType     string        `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel    string        `envconfig:"DEEPFACE_MODEL" default:"Facenet512"`
	DeepFaceDetector string        `envconfig:"DEEPFACE_DETECTOR" default:"retinaface"`
	DeepFaceTimeout  time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`
	DlibModelsDir    string        `envconfig:"DLIB_MODELS_DIR" default:"models"`

	// Matching
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.4"`

	// Rate limiting (requests per minute)
	RateLimitMax     int `envconfig:"RATE_LIMIT_MAX" default:"300"`
	AuthRateLimitMax int `envconfig:"AUTH_RATE_LIMIT_MAX" default:"20"`

	// Events
	NATSURL           string `envconfig:"NATS_URL"`
	NATSSubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"acquaint"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks combinations envconfig tags cannot express
func (c *Config) Validate() error {
	switch c.StoreType {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_TYPE=postgres")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_TYPE %q (supported: %s, %s)", c.StoreType, StorePostgres, StoreMemory)
	}

	if math.IsNaN(c.MatchThreshold) || c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be within [0,1], got %v", c.MatchThreshold)
	}
	if c.BodyLimitMB <= 0 {
		return errors.New("BODY_LIMIT_MB must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// BodyLimit returns the request body limit in bytes
func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
