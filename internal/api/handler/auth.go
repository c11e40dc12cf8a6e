package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/service"
)

// Authenticator is satisfied by *service.AuthService
type Authenticator interface {
	Register(ctx context.Context, reg domain.Registration) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

type AuthHandler struct {
	service Authenticator
	logger  *slog.Logger
}

func NewAuthHandler(service Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.service.Register(c.UserContext(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.logger.Info("user registered", slog.String("user_id", session.User.ID.String()))

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Message:  "User registered successfully",
		Token:    session.Token,
		Username: session.User.Username,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(SessionResponse{
		Message:  "Login successful",
		Token:    session.Token,
		Username: session.User.Username,
	})
}
