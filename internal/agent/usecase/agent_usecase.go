// Package usecase implements business logic orchestration for agent operations.
package usecase

import (
	"context"
	"log/slog"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
	capabilityService "github.com/aistaff/platform/internal/capability/service"
)

// agentUseCase implements AgentUseCase for agent lifecycle and task dispatch.
type agentUseCase struct {
	agentRepo AgentRepository
	engine    *capabilityService.Engine
	logger    *slog.Logger
}

// Create validates the requested capabilities against the registry and
// stores the agent.
//
// Unknown capability names are dropped with a warning rather than rejected,
// so a client listing a future capability still gets an agent with the
// subset that exists today. New agents start with status "inactive".
func (a *agentUseCase) Create(
	ctx context.Context,
	input *agentDomain.CreateAgentInput,
) (*agentDomain.Agent, error) {
	registry := a.engine.Registry()

	valid := make([]string, 0, len(input.Capabilities))
	for _, name := range input.Capabilities {
		if registry.Has(name) {
			valid = append(valid, name)
			continue
		}
		a.logger.Warn("ignoring unknown capability",
			slog.String("capability", name),
			slog.String("agent_name", input.Name))
	}

	agent := &agentDomain.Agent{
		Name:         input.Name,
		Description:  input.Description,
		Capabilities: valid,
		Status:       agentDomain.StatusInactive,
		IsActive:     true,
	}

	if err := a.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	a.logger.Info("created agent",
		slog.Int64("agent_id", agent.ID),
		slog.String("name", agent.Name),
		slog.Int("capabilities", len(agent.Capabilities)))

	return agent, nil
}

// Get retrieves an active agent by ID.
func (a *agentUseCase) Get(ctx context.Context, id int64) (*agentDomain.Agent, error) {
	return a.agentRepo.Get(ctx, id)
}

// List retrieves active agents with pagination.
func (a *agentUseCase) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	return a.agentRepo.List(ctx, offset, limit)
}

// Delete soft deletes an agent.
func (a *agentUseCase) Delete(ctx context.Context, id int64) error {
	if err := a.agentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	a.logger.Info("deleted agent", slog.Int64("agent_id", id))
	return nil
}

// RunTask executes a task against an agent's configured capability list.
//
// The dispatch engine handles capability matching and fault isolation, so
// errors surfaced here are either ErrAgentNotFound, ErrNoMatchingCapability
// or a HandlerError.
func (a *agentUseCase) RunTask(
	ctx context.Context,
	agentID int64,
	task *capabilityDomain.Task,
) (map[string]any, error) {
	agent, err := a.agentRepo.Get(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return a.engine.RunTask(agent.Capabilities, task)
}

// Capabilities returns the registered capability names in registration order.
func (a *agentUseCase) Capabilities() []string {
	return a.engine.Registry().Names()
}

// NewAgentUseCase creates a new AgentUseCase with the provided dependencies.
func NewAgentUseCase(
	agentRepo AgentRepository,
	engine *capabilityService.Engine,
	logger *slog.Logger,
) AgentUseCase {
	return &agentUseCase{
		agentRepo: agentRepo,
		engine:    engine,
		logger:    logger,
	}
}
