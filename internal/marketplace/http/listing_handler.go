// Package http provides HTTP handlers for marketplace operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	agentDTO "github.com/aistaff/platform/internal/agent/http/dto"
	"github.com/aistaff/platform/internal/httputil"
	"github.com/aistaff/platform/internal/marketplace/domain"
	"github.com/aistaff/platform/internal/marketplace/http/dto"
	marketplaceUseCase "github.com/aistaff/platform/internal/marketplace/usecase"
	customValidation "github.com/aistaff/platform/internal/validation"
)

// ListingHandler handles HTTP requests for marketplace operations.
type ListingHandler struct {
	marketplaceUseCase marketplaceUseCase.MarketplaceUseCase
	logger             *slog.Logger
}

// NewListingHandler creates a new listing handler with required dependencies.
func NewListingHandler(
	marketplaceUC marketplaceUseCase.MarketplaceUseCase,
	logger *slog.Logger,
) *ListingHandler {
	return &ListingHandler{
		marketplaceUseCase: marketplaceUC,
		logger:             logger,
	}
}

// CreateHandler publishes a new listing.
// POST /v1/marketplace/listings - Requires authentication.
// Returns 201 Created with the listing.
func (h *ListingHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateListingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &domain.CreateListingInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Author:       req.Author,
		Capabilities: req.Capabilities,
	}

	listing, err := h.marketplaceUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapListingToResponse(listing))
}

// ListHandler lists marketplace listings.
// GET /v1/marketplace/listings - Requires authentication.
func (h *ListingHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	listings, err := h.marketplaceUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListingsToListResponse(listings))
}

// GetHandler retrieves a listing by ID.
// GET /v1/marketplace/listings/:id - Requires authentication.
func (h *ListingHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	listing, err := h.marketplaceUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListingToResponse(listing))
}

// UpdateHandler replaces the mutable fields of a listing.
// PUT /v1/marketplace/listings/:id - Requires authentication.
func (h *ListingHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &domain.UpdateListingInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Author:       req.Author,
		Capabilities: req.Capabilities,
	}

	listing, err := h.marketplaceUseCase.Update(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListingToResponse(listing))
}

// DeleteHandler removes a listing permanently.
// DELETE /v1/marketplace/listings/:id - Requires authentication.
// Returns 204 No Content on success.
func (h *ListingHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.marketplaceUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// InstallHandler installs a listing as a new agent.
// POST /v1/marketplace/listings/:id/install - Requires authentication.
// Returns 201 Created with the agent built from the listing.
func (h *ListingHandler) InstallHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	agent, err := h.marketplaceUseCase.Install(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.InstallResponse{
		Agent: agentDTO.MapAgentToResponse(agent),
	})
}

// parseID extracts the numeric listing ID from the route. Writes a validation
// error response and returns false when the parameter is not a number.
func (h *ListingHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			errors.New("invalid listing id: must be an integer"),
			h.logger)
		return 0, false
	}
	return id, true
}
