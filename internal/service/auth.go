package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/auth"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/repository"
)

// Session is what a successful register or login hands back to the client
type Session struct {
	Token string
	User  *domain.User
}

type AuthService struct {
	users repository.UserStore
	jwt   *auth.JWTService
}

func NewAuthService(users repository.UserStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates an account and signs a token for it
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*Session, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	return s.session(user)
}

// Login checks credentials and signs a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("email and password are required"))
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	return s.session(user)
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
