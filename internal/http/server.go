// Package http provides the HTTP server, routing, and server middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	agentHTTP "github.com/aistaff/platform/internal/agent/http"
	authHTTP "github.com/aistaff/platform/internal/auth/http"
	capabilityHTTP "github.com/aistaff/platform/internal/capability/http"
	marketplaceHTTP "github.com/aistaff/platform/internal/marketplace/http"
	"github.com/aistaff/platform/internal/metrics"
)

// Server represents the HTTP API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database connection is used by the
// readiness probe; routes are registered via SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig holds the handlers and middleware used to assemble the router.
type RouterConfig struct {
	AuthHandler       *authHTTP.AuthHandler
	AgentHandler      *agentHTTP.AgentHandler
	CapabilityHandler *capabilityHTTP.CapabilityHandler
	ListingHandler    *marketplaceHTTP.ListingHandler
	AuthMiddleware    gin.HandlerFunc
	MetricsProvider   *metrics.Provider
	MetricsNamespace  string
	CORSEnabled       bool
	CORSAllowOrigins  string
}

// SetupRouter builds the Gin router with all middleware and routes.
func (s *Server) SetupRouter(routerConfig RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		routerConfig.CORSEnabled,
		routerConfig.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if routerConfig.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			routerConfig.MetricsProvider.MeterProvider(),
			routerConfig.MetricsNamespace,
		))
	}

	// Health and readiness probes
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public auth endpoints
	auth := v1.Group("/auth")
	auth.POST("/register", routerConfig.AuthHandler.RegisterHandler)
	auth.POST("/login", routerConfig.AuthHandler.LoginHandler)
	auth.POST("/refresh", routerConfig.AuthHandler.RefreshHandler)

	// Everything below requires a valid access token
	protected := v1.Group("")
	protected.Use(routerConfig.AuthMiddleware)

	protected.GET("/auth/me", routerConfig.AuthHandler.MeHandler)

	protected.GET("/capabilities", routerConfig.CapabilityHandler.ListHandler)

	agents := protected.Group("/agents")
	agents.POST("", routerConfig.AgentHandler.CreateHandler)
	agents.GET("", routerConfig.AgentHandler.ListHandler)
	agents.GET("/:id", routerConfig.AgentHandler.GetHandler)
	agents.DELETE("/:id", routerConfig.AgentHandler.DeleteHandler)
	agents.POST("/:id/tasks", routerConfig.AgentHandler.RunTaskHandler)

	listings := protected.Group("/marketplace/listings")
	listings.POST("", routerConfig.ListingHandler.CreateHandler)
	listings.GET("", routerConfig.ListingHandler.ListHandler)
	listings.GET("/:id", routerConfig.ListingHandler.GetHandler)
	listings.PUT("/:id", routerConfig.ListingHandler.UpdateHandler)
	listings.DELETE("/:id", routerConfig.ListingHandler.DeleteHandler)
	listings.POST("/:id/install", routerConfig.ListingHandler.InstallHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// connection is pinged with a short timeout so a stuck pool does not hang the probe.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(pingCtx); err != nil {
			s.logger.Error("database ping failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
