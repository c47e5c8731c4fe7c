package usecase

import (
	"context"
	"time"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
	"github.com/aistaff/platform/internal/metrics"
)

// agentUseCaseWithMetrics decorates AgentUseCase with metrics instrumentation.
type agentUseCaseWithMetrics struct {
	next    AgentUseCase
	metrics metrics.BusinessMetrics
}

// NewAgentUseCaseWithMetrics wraps an AgentUseCase with metrics recording.
func NewAgentUseCaseWithMetrics(useCase AgentUseCase, m metrics.BusinessMetrics) AgentUseCase {
	return &agentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for agent creation operations.
func (a *agentUseCaseWithMetrics) Create(
	ctx context.Context,
	input *agentDomain.CreateAgentInput,
) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", "create", status)
	a.metrics.RecordDuration(ctx, "agent", "create", time.Since(start), status)

	return agent, err
}

// Get records metrics for agent retrieval operations.
func (a *agentUseCaseWithMetrics) Get(ctx context.Context, id int64) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", "get", status)
	a.metrics.RecordDuration(ctx, "agent", "get", time.Since(start), status)

	return agent, err
}

// List records metrics for agent list operations.
func (a *agentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*agentDomain.Agent, error) {
	start := time.Now()
	agents, err := a.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", "list", status)
	a.metrics.RecordDuration(ctx, "agent", "list", time.Since(start), status)

	return agents, err
}

// Delete records metrics for agent deletion operations.
func (a *agentUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", "delete", status)
	a.metrics.RecordDuration(ctx, "agent", "delete", time.Since(start), status)

	return err
}

// RunTask records metrics for task execution operations.
func (a *agentUseCaseWithMetrics) RunTask(
	ctx context.Context,
	agentID int64,
	task *capabilityDomain.Task,
) (map[string]any, error) {
	start := time.Now()
	output, err := a.next.RunTask(ctx, agentID, task)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", "run_task", status)
	a.metrics.RecordDuration(ctx, "agent", "run_task", time.Since(start), status)

	return output, err
}

// Capabilities passes through without metrics, the registry is in-memory.
func (a *agentUseCaseWithMetrics) Capabilities() []string {
	return a.next.Capabilities()
}
