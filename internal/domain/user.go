package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input
	maxPasswordBytes = 72
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User owns exactly one gallery of acquaintances
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Registration holds the raw sign-up input before hashing
type Registration struct {
	Username string
	Email    string
	Password string
}

// Normalize trims the identity fields; the password is left untouched.
func (r *Registration) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the sign-up rules
func (r *Registration) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return errors.New("all fields are required")
	}

	if len(r.Username) < minUsernameLength {
		return errors.New("username must be at least 3 characters")
	}

	if !IsValidEmail(r.Email) {
		return errors.New("invalid email format")
	}

	if len(r.Password) < minPasswordLength {
		return errors.New("password must be at least 6 characters")
	}

	if len(r.Password) > maxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}

	return nil
}

// IsValidEmail reports whether email has a plausible address shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
