package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/aistaff/platform/internal/auth/domain"
	"github.com/aistaff/platform/internal/auth/http/dto"
	authUseCase "github.com/aistaff/platform/internal/auth/usecase"
	apperrors "github.com/aistaff/platform/internal/errors"
	"github.com/aistaff/platform/internal/httputil"
	customValidation "github.com/aistaff/platform/internal/validation"
)

// AuthHandler handles HTTP requests for account registration and token operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUC,
		logger:      logger,
	}
}

// RegisterHandler creates a new account.
// POST /v1/auth/register - No authentication required.
// Returns 201 Created with the account profile.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}

	user, err := h.authUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// LoginHandler authenticates a username and password.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with a bearer token pair.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credentials := &authDomain.Credentials{
		Username: req.Username,
		Password: req.Password,
	}

	pair, err := h.authUseCase.Login(c.Request.Context(), credentials)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// RefreshHandler rotates a refresh token into a fresh token pair.
// POST /v1/auth/refresh - No authentication required, the refresh token is the credential.
// Returns 200 OK with a bearer token pair.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// MeHandler returns the authenticated account's profile.
// GET /v1/auth/me - Requires authentication.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		// The authentication middleware always sets the user on this route
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
