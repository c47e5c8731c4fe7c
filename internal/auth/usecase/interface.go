// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/aistaff/platform/internal/auth/domain"
	userDomain "github.com/aistaff/platform/internal/user/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user in the repository. Returns ErrDuplicateIdentity
	// when the username or email is already taken.
	Create(ctx context.Context, user *userDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, id int64) (*userDomain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// Deactivate soft deletes a user by clearing the active flag.
	Deactivate(ctx context.Context, id int64) error
}

// AuthUseCase defines business logic operations for account and token lifecycle.
type AuthUseCase interface {
	// Register creates a new active account with a hashed password.
	//
	// Returns ErrDuplicateIdentity when the username or email is already
	// registered. The duplicate check covers both fields so neither can be
	// claimed twice.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*userDomain.User, error)

	// Login authenticates a username and password and issues a token pair.
	//
	// Returns ErrInvalidCredentials for both unknown usernames and wrong
	// passwords, and ErrInactiveAccount when the account is deactivated.
	Login(ctx context.Context, credentials *authDomain.Credentials) (*authDomain.TokenPair, error)

	// Refresh validates a refresh token and issues a fresh token pair.
	//
	// The account's active status is re-checked so deactivated accounts
	// cannot keep rotating tokens. Returns ErrInvalidToken for any token
	// problem and ErrInactiveAccount for deactivated accounts.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// Authenticate validates an access token and returns the account it
	// belongs to. Returns ErrInvalidToken for any token problem and
	// ErrInactiveAccount for deactivated accounts.
	Authenticate(ctx context.Context, accessToken string) (*userDomain.User, error)
}
