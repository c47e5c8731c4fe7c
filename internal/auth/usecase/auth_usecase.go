// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"strconv"

	authDomain "github.com/aistaff/platform/internal/auth/domain"
	authService "github.com/aistaff/platform/internal/auth/service"
	userDomain "github.com/aistaff/platform/internal/user/domain"
)

// authUseCase implements AuthUseCase for account registration and token lifecycle.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// Register creates a new active account with a hashed password.
//
// Both the username and the email are checked before the insert so the
// caller gets a deterministic conflict error. The insert still relies on
// the unique constraints to close the race between check and insert.
func (a *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	if _, err := a.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, userDomain.ErrDuplicateIdentity
	} else if !errors.Is(err, userDomain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := a.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, userDomain.ErrDuplicateIdentity
	} else if !errors.Is(err, userDomain.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := a.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		IsActive:     true,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a username and password and issues a token pair.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown usernames and wrong
//     passwords to prevent user enumeration attacks
//   - Returns ErrInactiveAccount if the account exists but is deactivated
func (a *authUseCase) Login(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.TokenPair, error) {
	user, err := a.userRepo.GetByUsername(ctx, credentials.Username)
	if err != nil {
		// If user not found, return generic error to prevent enumeration
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.ComparePassword(credentials.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, authDomain.ErrInactiveAccount
	}

	return a.issuePair(user.ID)
}

// Refresh validates a refresh token and issues a fresh token pair.
func (a *authUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	user, err := a.resolveToken(ctx, refreshToken, authDomain.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return a.issuePair(user.ID)
}

// Authenticate validates an access token and returns the account it belongs to.
func (a *authUseCase) Authenticate(ctx context.Context, accessToken string) (*userDomain.User, error) {
	return a.resolveToken(ctx, accessToken, authDomain.TokenTypeAccess)
}

// resolveToken validates a token of the expected type and loads its account.
// The account must still exist and be active.
func (a *authUseCase) resolveToken(
	ctx context.Context,
	token string,
	expectedType authDomain.TokenType,
) (*userDomain.User, error) {
	subject, err := a.tokenService.ValidateToken(token, expectedType)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	user, err := a.userRepo.Get(ctx, userID)
	if err != nil {
		// A valid token for a deleted account is still an invalid token
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, authDomain.ErrInactiveAccount
	}

	return user, nil
}

// issuePair signs a new access and refresh token for the user.
func (a *authUseCase) issuePair(userID int64) (*authDomain.TokenPair, error) {
	subject := strconv.FormatInt(userID, 10)

	accessToken, err := a.tokenService.IssueAccessToken(subject)
	if err != nil {
		return nil, err
	}

	refreshToken, err := a.tokenService.IssueRefreshToken(subject)
	if err != nil {
		return nil, err
	}

	return authDomain.NewTokenPair(accessToken, refreshToken), nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
