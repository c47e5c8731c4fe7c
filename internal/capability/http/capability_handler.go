// Package http provides HTTP handlers for capability introspection.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	capabilityService "github.com/aistaff/platform/internal/capability/service"
)

// CapabilityHandler exposes the registered capability set.
type CapabilityHandler struct {
	registry *capabilityService.Registry
	logger   *slog.Logger
}

// NewCapabilityHandler creates a new capability handler.
func NewCapabilityHandler(registry *capabilityService.Registry, logger *slog.Logger) *CapabilityHandler {
	return &CapabilityHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListHandler returns the capability names in registration order.
// GET /v1/capabilities - Requires authentication.
func (h *CapabilityHandler) ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"capabilities": h.registry.Names(),
	})
}
