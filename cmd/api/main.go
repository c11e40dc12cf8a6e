package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/api"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/auth"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/config"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/database"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/face"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/observability"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/repository"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/service"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/ws"
)

const jwtIssuer = "acquaint-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting Acquaint API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("store", cfg.StoreType),
		slog.String("provider", cfg.ProviderType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var (
		gallery repository.GalleryStore
		users   repository.UserStore
		pinger  database.Pinger
	)
	switch cfg.StoreType {
	case config.StorePostgres:
		if cfg.RunMigrations {
			logger.Info("running migrations")
			if err := database.MigrateUp(ctx, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		gallery = repository.NewAcquaintanceRepository(pool)
		users = repository.NewUserRepository(pool)
		pinger = pool
	default:
		logger.Warn("using in-memory store; galleries are lost on restart")
		gallery = repository.NewMemoryGallery()
		users = repository.NewMemoryUsers()
	}

	// Face extractor
	extractor, closeExtractor, err := face.NewExtractor(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face extractor: %w", err)
	}
	defer closeExtractor()
	extractor = observability.InstrumentExtractor(extractor)

	// Live socket hub and event fan-out
	hub := ws.NewHub()
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go hub.Run(hubCtx)

	publisher := events.Multi{hub}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer func() { _ = natsPublisher.Close() }()
		publisher = append(publisher, natsPublisher)
		logger.Info("publishing events to nats", slog.String("prefix", cfg.NATSSubjectPrefix))
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret, jwtIssuer, cfg.JWTTTL)
	recognizer := service.NewRecognitionService(gallery, extractor).WithThreshold(cfg.MatchThreshold)

	router := api.NewRouter(cfg, logger, &api.Dependencies{
		Auth:       service.NewAuthService(users, jwtService),
		Tokens:     jwtService,
		Recognizer: recognizer,
		Enroller:   service.NewEnrollmentService(gallery, extractor),
		Gallery:    service.NewGalleryService(gallery),
		Hub:        hub,
		Publisher:  publisher,
		DB:         pinger,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	cancelHub()

	done := make(chan error, 1)
	go func() { done <- router.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}

	logger.Info("server stopped")
	return nil
}
