// Package service provides technical services for authentication operations.
//
// This package implements reusable services for password hashing and JWT
// token issuance using industry-standard cryptographic practices.
package service

import "github.com/aistaff/platform/internal/auth/domain"

// PasswordService defines operations for password hashing and validation.
// Implementations must use an industry-standard password hashing algorithm
// (e.g., bcrypt, argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a stored hash.
	// Returns true if the password matches, false otherwise, including when
	// the stored hash is malformed. The comparison is constant-time.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService defines operations for signed token issuance and validation.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for the subject.
	IssueAccessToken(subject string) (string, error)

	// IssueRefreshToken creates a long-lived refresh token for the subject.
	IssueRefreshToken(subject string) (string, error)

	// ValidateToken verifies the token signature, expiration and type claim,
	// returning the subject. Any failure yields domain.ErrInvalidToken so
	// callers never leak why a token was rejected.
	ValidateToken(token string, expectedType domain.TokenType) (subject string, err error)
}
