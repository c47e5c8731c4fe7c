// Package usecase defines business logic interfaces for agent management and task execution.
package usecase

import (
	"context"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
)

// AgentRepository defines persistence operations for agents.
// Implementations must support transaction-aware operations via context propagation.
type AgentRepository interface {
	// Create stores a new agent in the repository.
	Create(ctx context.Context, agent *agentDomain.Agent) error

	// Get retrieves an active agent by ID. Returns ErrAgentNotFound if not found.
	Get(ctx context.Context, id int64) (*agentDomain.Agent, error)

	// List retrieves active agents with pagination.
	List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error)

	// SoftDelete hides an agent by clearing the active flag.
	SoftDelete(ctx context.Context, id int64) error
}

// AgentUseCase defines business logic operations for agent lifecycle and task dispatch.
type AgentUseCase interface {
	// Create validates the requested capabilities against the registry and
	// stores the agent. Unknown capability names are dropped with a warning,
	// not rejected.
	Create(ctx context.Context, input *agentDomain.CreateAgentInput) (*agentDomain.Agent, error)

	// Get retrieves an active agent by ID.
	Get(ctx context.Context, id int64) (*agentDomain.Agent, error)

	// List retrieves active agents with pagination.
	List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error)

	// Delete soft deletes an agent.
	Delete(ctx context.Context, id int64) error

	// RunTask executes a task against an agent's configured capability list.
	RunTask(ctx context.Context, agentID int64, task *capabilityDomain.Task) (map[string]any, error)

	// Capabilities returns the registered capability names in registration order.
	Capabilities() []string
}
