package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// PgxPool is the subset of *pgxpool.Pool the repositories use.
// pgxmock.PgxPoolIface satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GalleryStore defines operations for a user's acquaintance gallery
type GalleryStore interface {
	// Create persists a new acquaintance, filling ID and AddedAt when unset.
	// A name already used by the owner yields domain.ErrDuplicateName.
	Create(ctx context.Context, a *domain.Acquaintance) error
	// ListByUser returns the owner's gallery in insertion order
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Acquaintance, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Acquaintance, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// UserStore defines operations for account data access
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
