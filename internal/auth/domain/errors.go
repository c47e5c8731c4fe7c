package domain

import "github.com/aistaff/platform/internal/errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so responses do not reveal which part failed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid username or password")

	// ErrInactiveAccount is returned when the credentials check out but
	// the account has been deactivated.
	ErrInactiveAccount = errors.Wrap(errors.ErrForbidden, "account is inactive")

	// ErrInvalidToken covers malformed, tampered, expired and
	// wrong-type tokens with a single opaque message.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")
)
