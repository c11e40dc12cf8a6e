package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

type AcquaintanceRepository struct {
	pool PgxPool
}

func NewAcquaintanceRepository(pool PgxPool) *AcquaintanceRepository {
	return &AcquaintanceRepository{pool: pool}
}

func (r *AcquaintanceRepository) Create(ctx context.Context, a *domain.Acquaintance) error {
	query := `
		INSERT INTO acquaintances (id, user_id, name, relationship, embedding, image, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING added_at
	`

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.Name,
		a.Relationship,
		toVector(a.Embedding),
		a.Image,
	).Scan(&a.AddedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("create acquaintance: %w", err)
	}

	return nil
}

func (r *AcquaintanceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Acquaintance, error) {
	query := `
		SELECT id, user_id, name, relationship, embedding, image, added_at
		FROM acquaintances
		WHERE user_id = $1
		ORDER BY added_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list acquaintances: %w", err)
	}
	defer rows.Close()

	gallery := make([]domain.Acquaintance, 0)
	for rows.Next() {
		var a domain.Acquaintance
		var embedding *pgvector.Vector

		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Relationship, &embedding, &a.Image, &a.AddedAt); err != nil {
			return nil, fmt.Errorf("scan acquaintance: %w", err)
		}
		a.Embedding = fromVector(embedding)
		gallery = append(gallery, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list acquaintances: %w", err)
	}

	return gallery, nil
}

func (r *AcquaintanceRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Acquaintance, error) {
	query := `
		SELECT id, user_id, name, relationship, embedding, image, added_at
		FROM acquaintances
		WHERE user_id = $1 AND name = $2
	`

	var a domain.Acquaintance
	var embedding *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, userID, name).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Relationship,
		&embedding,
		&a.Image,
		&a.AddedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAcquaintanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get acquaintance by name: %w", err)
	}

	a.Embedding = fromVector(embedding)
	return &a, nil
}

func (r *AcquaintanceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM acquaintances
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete acquaintance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAcquaintanceNotFound
	}

	return nil
}

var _ GalleryStore = (*AcquaintanceRepository)(nil)
