package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "unique") ||
		strings.Contains(errMsg, "duplicate key")
}

// violatedConstraint returns the constraint name of a postgres error, or ""
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func toVector(embedding []float64) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

func fromVector(vec *pgvector.Vector) []float64 {
	if vec == nil || vec.Slice() == nil {
		return nil
	}
	out := make([]float64, len(vec.Slice()))
	for i, v := range vec.Slice() {
		out[i] = float64(v)
	}
	return out
}
