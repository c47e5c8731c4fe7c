// Package integration provides end-to-end integration tests for the platform API.
// Tests all API endpoints against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentDTO "github.com/aistaff/platform/internal/agent/http/dto"
	"github.com/aistaff/platform/internal/app"
	authDTO "github.com/aistaff/platform/internal/auth/http/dto"
	"github.com/aistaff/platform/internal/config"
	marketplaceDTO "github.com/aistaff/platform/internal/marketplace/http/dto"
	"github.com/aistaff/platform/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container   *app.Container
	db          *sql.DB
	server      *httptest.Server
	accessToken string
	dbDriver    string
}

// driverCases enumerates the database drivers exercised by the integration suite.
var driverCases = []struct {
	name     string
	dbDriver string
}{
	{"postgres", "postgres"},
	{"mysql", "mysql"},
}

// setupIntegrationTest initializes all components for integration testing and
// registers a user to obtain an access token.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:               dbDriver,
		DBConnectionString:     dsn,
		DBMaxOpenConnections:   10,
		DBMaxIdleConnections:   5,
		DBConnMaxLifetime:      time.Hour,
		ServerHost:             "localhost",
		ServerPort:             8080,
		LogLevel:               "error",
		JWTSecretKey:           "integration-test-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		MetricsEnabled:         false,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}

	// Register a user and log in for authenticated requests
	resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/register", authDTO.RegisterRequest{
		Username: "integration",
		Email:    "integration@example.com",
		Password: "Password123",
		FullName: "Integration Test",
	}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "failed to register user")

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login", authDTO.LoginRequest{
		Username: "integration",
		Password: "Password123",
	}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, "failed to login")

	var tokens authDTO.TokenPairResponse
	require.NoError(t, json.Unmarshal(body, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	ctx.accessToken = tokens.AccessToken

	return ctx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func TestIntegration_HealthEndpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "healthy")

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "ready")
		})
	}
}

func TestIntegration_AuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Duplicate registration conflicts
			resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/register", authDTO.RegisterRequest{
				Username: "integration",
				Email:    "other@example.com",
				Password: "Password123",
			}, false)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)

			// Current user via access token
			resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/auth/me", nil, true)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var user authDTO.UserResponse
			require.NoError(t, json.Unmarshal(body, &user))
			assert.Equal(t, "integration", user.Username)

			// Protected endpoint without token
			resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/auth/me", nil, false)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// Refresh rejects an access token
			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshRequest{
				RefreshToken: ctx.accessToken,
			}, false)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestIntegration_AgentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Unknown capabilities are dropped, not rejected
			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/agents", agentDTO.CreateAgentRequest{
				Name:         "writer",
				Description:  "writes text",
				Capabilities: []string{"text_processing", "time_travel"},
			}, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var agent agentDTO.AgentResponse
			require.NoError(t, json.Unmarshal(body, &agent))
			assert.Equal(t, []string{"text_processing"}, agent.Capabilities)
			assert.Equal(t, "inactive", agent.Status)

			agentPath := fmt.Sprintf("/v1/agents/%d", agent.ID)

			// Task dispatch against the agent's capability list
			resp, body = ctx.makeRequest(t, http.MethodPost, agentPath+"/tasks", agentDTO.RunTaskRequest{
				Type: "text_processing",
				Data: map[string]any{"text": "hello world"},
			}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var result agentDTO.TaskResultResponse
			require.NoError(t, json.Unmarshal(body, &result))
			require.Nil(t, result.Error)
			assert.Equal(t, "Processed: hello world", result.Output["processed_text"])
			assert.Equal(t, float64(2), result.Output["word_count"])

			// Task type outside the agent's capability list
			resp, _ = ctx.makeRequest(t, http.MethodPost, agentPath+"/tasks", agentDTO.RunTaskRequest{
				Type: "automation",
				Data: map[string]any{"task": "backup"},
			}, true)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			// Handler failures surface as structured output, not HTTP errors
			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/agents", agentDTO.CreateAgentRequest{
				Name:         "analyst",
				Capabilities: []string{"data_analysis"},
			}, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var analyst agentDTO.AgentResponse
			require.NoError(t, json.Unmarshal(body, &analyst))

			resp, body = ctx.makeRequest(t, http.MethodPost,
				fmt.Sprintf("/v1/agents/%d/tasks", analyst.ID),
				agentDTO.RunTaskRequest{
					Type: "data_analysis",
					Data: map[string]any{"data": []any{}},
				}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			require.NoError(t, json.Unmarshal(body, &result))
			require.NotNil(t, result.Error)
			assert.Equal(t, "data_analysis", result.Error.Capability)

			// List includes both agents
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/agents", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var list agentDTO.ListAgentsResponse
			require.NoError(t, json.Unmarshal(body, &list))
			assert.Len(t, list.Data, 2)

			// Soft delete hides the agent
			resp, _ = ctx.makeRequest(t, http.MethodDelete, agentPath, nil, true)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, agentPath, nil, true)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestIntegration_CapabilityDiscovery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/capabilities", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var response map[string][]string
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, []string{
				"text_processing",
				"data_analysis",
				"customer_service",
				"code_generation",
				"automation",
			}, response["capabilities"])
		})
	}
}

func TestIntegration_MarketplaceFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/marketplace/listings",
				marketplaceDTO.CreateListingRequest{
					Name:         "Writer Pro",
					Description:  "a writing agent",
					Price:        9.99,
					Author:       "acme",
					Capabilities: []string{"text_processing"},
				}, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var listing marketplaceDTO.ListingResponse
			require.NoError(t, json.Unmarshal(body, &listing))
			assert.Equal(t, int64(0), listing.Downloads)

			listingPath := fmt.Sprintf("/v1/marketplace/listings/%d", listing.ID)

			// Update replaces mutable fields
			resp, body = ctx.makeRequest(t, http.MethodPut, listingPath,
				marketplaceDTO.UpdateListingRequest{
					Name:         "Writer Ultra",
					Description:  "a writing agent",
					Price:        19.99,
					Author:       "acme",
					Capabilities: []string{"text_processing"},
				}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &listing))
			assert.Equal(t, "Writer Ultra", listing.Name)

			// Install creates an agent and bumps the download counter
			resp, body = ctx.makeRequest(t, http.MethodPost, listingPath+"/install", nil, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var install marketplaceDTO.InstallResponse
			require.NoError(t, json.Unmarshal(body, &install))
			assert.Equal(t, "Writer Ultra", install.Agent.Name)
			assert.Equal(t, []string{"text_processing"}, install.Agent.Capabilities)

			resp, body = ctx.makeRequest(t, http.MethodGet, listingPath, nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &listing))
			assert.Equal(t, int64(1), listing.Downloads)

			// Delete removes the listing permanently
			resp, _ = ctx.makeRequest(t, http.MethodDelete, listingPath, nil, true)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, listingPath, nil, true)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}
