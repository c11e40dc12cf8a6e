package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// unique constraints declared in the users migration
const (
	usersEmailKey    = "users_email_key"
	usersUsernameKey = "users_username_key"
)

type UserRepository struct {
	pool PgxPool
}

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return uniqueUserError(err)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func uniqueUserError(err error) error {
	constraint := violatedConstraint(err)
	if constraint == "" {
		constraint = err.Error()
	}

	switch {
	case strings.Contains(constraint, usersUsernameKey):
		return domain.ErrUsernameTaken
	case strings.Contains(constraint, usersEmailKey):
		return domain.ErrEmailTaken
	default:
		return domain.ErrEmailTaken.WithError(err)
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return r.getOne(ctx, "get user by email", query, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return r.getOne(ctx, "get user by id", query, id)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &u, nil
}

var _ UserStore = (*UserRepository)(nil)
