package app

import (
	"fmt"

	agentHTTP "github.com/aistaff/platform/internal/agent/http"
	agentRepository "github.com/aistaff/platform/internal/agent/repository"
	agentUseCase "github.com/aistaff/platform/internal/agent/usecase"
	capabilityHTTP "github.com/aistaff/platform/internal/capability/http"
	capabilityService "github.com/aistaff/platform/internal/capability/service"
)

// CapabilityRegistry returns the capability registry with all built-in handlers.
// The registry is immutable after creation.
func (c *Container) CapabilityRegistry() *capabilityService.Registry {
	c.capabilityRegistryInit.Do(func() {
		c.capabilityRegistry = capabilityService.NewRegistry()
	})
	return c.capabilityRegistry
}

// CapabilityEngine returns the capability dispatch engine.
func (c *Container) CapabilityEngine() *capabilityService.Engine {
	c.capabilityEngineInit.Do(func() {
		c.capabilityEngine = capabilityService.NewEngine(c.CapabilityRegistry(), c.Logger())
	})
	return c.capabilityEngine
}

// CapabilityHandler returns the HTTP handler for capability discovery.
func (c *Container) CapabilityHandler() *capabilityHTTP.CapabilityHandler {
	c.capabilityHandlerInit.Do(func() {
		c.capabilityHandler = capabilityHTTP.NewCapabilityHandler(c.CapabilityRegistry(), c.Logger())
	})
	return c.capabilityHandler
}

// AgentRepository returns the agent repository based on database driver.
func (c *Container) AgentRepository() (agentUseCase.AgentRepository, error) {
	var err error
	c.agentRepositoryInit.Do(func() {
		c.agentRepository, err = c.initAgentRepository()
		if err != nil {
			c.initErrors["agentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentRepository"]; exists {
		return nil, storedErr
	}
	return c.agentRepository, nil
}

// AgentUseCase returns the agent use case.
func (c *Container) AgentUseCase() (agentUseCase.AgentUseCase, error) {
	var err error
	c.agentUseCaseInit.Do(func() {
		c.agentUseCase, err = c.initAgentUseCase()
		if err != nil {
			c.initErrors["agentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentUseCase"]; exists {
		return nil, storedErr
	}
	return c.agentUseCase, nil
}

// AgentHandler returns the HTTP handler for agent operations.
func (c *Container) AgentHandler() (*agentHTTP.AgentHandler, error) {
	var err error
	c.agentHandlerInit.Do(func() {
		c.agentHandler, err = c.initAgentHandler()
		if err != nil {
			c.initErrors["agentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentHandler"]; exists {
		return nil, storedErr
	}
	return c.agentHandler, nil
}

// initAgentRepository creates the agent repository based on the database driver.
func (c *Container) initAgentRepository() (agentUseCase.AgentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for agent repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return agentRepository.NewPostgreSQLAgentRepository(db), nil
	case "mysql":
		return agentRepository.NewMySQLAgentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAgentUseCase creates the agent use case with all its dependencies.
func (c *Container) initAgentUseCase() (agentUseCase.AgentUseCase, error) {
	agentRepo, err := c.AgentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent repository for agent use case: %w", err)
	}

	baseUseCase := agentUseCase.NewAgentUseCase(agentRepo, c.CapabilityEngine(), c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for agent use case: %w", err)
		}
		return agentUseCase.NewAgentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAgentHandler creates the agent HTTP handler with all its dependencies.
func (c *Container) initAgentHandler() (*agentHTTP.AgentHandler, error) {
	agentUC, err := c.AgentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent use case for agent handler: %w", err)
	}

	return agentHTTP.NewAgentHandler(agentUC, c.Logger()), nil
}
