package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/config"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/database"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/ws"
)

// Recognizer serves both POST /api/recognize and the live socket
type Recognizer interface {
	handler.Recognizer
	ws.Recognizer
}

type Dependencies struct {
	Auth       handler.Authenticator
	Tokens     middleware.TokenValidator
	Recognizer Recognizer
	Enroller   handler.Enroller
	Gallery    handler.Gallery
	Hub        *ws.Hub
	Publisher  events.Publisher
	// DB is pinged by /ready; nil when running on the memory store
	DB database.Pinger
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	cfg         *config.Config
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
	authLimiter *middleware.RateLimiter
}

func NewRouter(cfg *config.Config, logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Acquaint API",
		BodyLimit:    cfg.BodyLimit(),
	})

	return &Router{
		app:    app,
		logger: logger,
		cfg:    cfg,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(middleware.Metrics())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(r.cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Probes and metrics (no auth required)
	var db database.Pinger
	if r.deps != nil {
		db = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(db)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Only configure API routes if dependencies were provided
	if r.deps == nil {
		return
	}

	api := r.app.Group("/api")

	// Auth routes, limited per client IP
	r.authLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Max:          r.cfg.AuthRateLimitMax,
		Window:       time.Minute,
		KeyGenerator: middleware.IPKey,
	})
	authHandler := handler.NewAuthHandler(r.deps.Auth, r.logger)
	api.Post("/auth/register", r.authLimiter.Handler(), authHandler.Register)
	api.Post("/auth/login", r.authLimiter.Handler(), authHandler.Login)

	// Everything else needs a token and is limited per user.
	// Attached per route so the auth routes above stay public.
	r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Max:          r.cfg.RateLimitMax,
		Window:       time.Minute,
		KeyGenerator: middleware.UserKey,
	})
	authenticated := []fiber.Handler{middleware.Auth(r.deps.Tokens), r.rateLimiter.Handler()}
	protect := func(h ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, authenticated...), h...)
	}

	recognizeHandler := handler.NewRecognizeHandler(r.deps.Recognizer)
	acquaintanceHandler := handler.NewAcquaintanceHandler(r.deps.Enroller, r.deps.Gallery, r.deps.Publisher, r.logger)

	api.Post("/recognize", protect(recognizeHandler.Recognize)...)

	api.Post("/acquaintances/add", protect(acquaintanceHandler.Add)...)
	api.Post("/acquaintances", protect(acquaintanceHandler.Add)...)
	api.Get("/acquaintances", protect(acquaintanceHandler.List)...)
	api.Delete("/acquaintances/:id", protect(acquaintanceHandler.Delete)...)

	// WebSocket endpoint
	if r.deps.Hub != nil {
		api.Get("/ws", protect(ws.UpgradeMiddleware(), ws.Handler(r.deps.Hub, r.deps.Recognizer, r.logger))...)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutines
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}
	if r.authLimiter != nil {
		r.authLimiter.Stop()
	}

	return r.app.Shutdown()
}
