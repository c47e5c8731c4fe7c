// Package http provides HTTP handlers for agent management and task execution.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/agent/http/dto"
	agentUseCase "github.com/aistaff/platform/internal/agent/usecase"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
	"github.com/aistaff/platform/internal/httputil"
	customValidation "github.com/aistaff/platform/internal/validation"
)

// AgentHandler handles HTTP requests for agent operations.
type AgentHandler struct {
	agentUseCase agentUseCase.AgentUseCase
	logger       *slog.Logger
}

// NewAgentHandler creates a new agent handler with required dependencies.
func NewAgentHandler(
	agentUC agentUseCase.AgentUseCase,
	logger *slog.Logger,
) *AgentHandler {
	return &AgentHandler{
		agentUseCase: agentUC,
		logger:       logger,
	}
}

// CreateHandler creates a new agent.
// POST /v1/agents - Requires authentication.
// Returns 201 Created with the agent, unknown capabilities silently dropped.
func (h *AgentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAgentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &agentDomain.CreateAgentInput{
		Name:         req.Name,
		Description:  req.Description,
		Capabilities: req.Capabilities,
	}

	agent, err := h.agentUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAgentToResponse(agent))
}

// ListHandler lists active agents.
// GET /v1/agents - Requires authentication.
func (h *AgentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	agents, err := h.agentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentsToListResponse(agents))
}

// GetHandler retrieves an agent by ID.
// GET /v1/agents/:id - Requires authentication.
func (h *AgentHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	agent, err := h.agentUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

// DeleteHandler soft deletes an agent.
// DELETE /v1/agents/:id - Requires authentication.
// Returns 204 No Content on success.
func (h *AgentHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.agentUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RunTaskHandler executes a task against an agent.
// POST /v1/agents/:id/tasks - Requires authentication.
//
// A handler failure is reported as structured output with 200 OK, not as an
// HTTP error, so one malfunctioning capability does not look like a broken
// API. Missing agents and unmatched task types are regular HTTP errors.
func (h *AgentHandler) RunTaskHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.RunTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	task := &capabilityDomain.Task{
		Type: req.Type,
		Data: req.Data,
	}

	output, err := h.agentUseCase.RunTask(c.Request.Context(), id, task)
	if err != nil {
		var handlerErr *capabilityDomain.HandlerError
		if errors.As(err, &handlerErr) {
			c.JSON(http.StatusOK, dto.TaskResultResponse{
				Error: &dto.TaskFailure{
					Capability: handlerErr.Capability,
					Message:    handlerErr.Message,
				},
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResultResponse{Output: output})
}

// parseID extracts the numeric agent ID from the route. Writes a validation
// error response and returns false when the parameter is not a number.
func (h *AgentHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			errors.New("invalid agent id: must be an integer"),
			h.logger)
		return 0, false
	}
	return id, true
}
