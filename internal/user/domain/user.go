// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/aistaff/platform/internal/errors"
)

// User represents an operator account in the system.
// The password hash is produced by the auth password service and is never
// the plaintext password.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrDuplicateIdentity indicates a user with the same username or email already exists.
	ErrDuplicateIdentity = errors.Wrap(errors.ErrConflict, "username or email already registered")
)
