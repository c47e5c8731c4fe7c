package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aistaff/platform/internal/auth/domain"
	apperrors "github.com/aistaff/platform/internal/errors"
)

// tokenService implements TokenService using HS256 signed JWTs.
type tokenService struct {
	secret            []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
}

// IssueAccessToken creates a short-lived access token for the subject.
func (s *tokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, domain.TokenTypeAccess, s.accessExpiration)
}

// IssueRefreshToken creates a long-lived refresh token for the subject.
func (s *tokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, domain.TokenTypeRefresh, s.refreshExpiration)
}

func (s *tokenService) issue(subject string, tokenType domain.TokenType, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": string(tokenType),
		"iat":  now.Unix(),
		"exp":  now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken verifies the token signature, expiration and type claim.
// All failures collapse into domain.ErrInvalidToken.
func (s *tokenService) ValidateToken(tokenString string, expectedType domain.TokenType) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != string(expectedType) {
		return "", domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrInvalidToken
	}

	return sub, nil
}

// NewTokenService creates a TokenService signing HS256 tokens with the
// given secret and expiration windows.
func NewTokenService(secret string, accessExpiration, refreshExpiration time.Duration) TokenService {
	return &tokenService{
		secret:            []byte(secret),
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
	}
}
