// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
)

// MockAgentUseCase is a mock implementation of AgentUseCase for testing.
type MockAgentUseCase struct {
	mock.Mock
}

// Create mocks the Create method of AgentUseCase.
func (m *MockAgentUseCase) Create(
	ctx context.Context,
	input *agentDomain.CreateAgentInput,
) (*agentDomain.Agent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}

// Get mocks the Get method of AgentUseCase.
func (m *MockAgentUseCase) Get(ctx context.Context, id int64) (*agentDomain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}

// List mocks the List method of AgentUseCase.
func (m *MockAgentUseCase) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentDomain.Agent), args.Error(1)
}

// Delete mocks the Delete method of AgentUseCase.
func (m *MockAgentUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// RunTask mocks the RunTask method of AgentUseCase.
func (m *MockAgentUseCase) RunTask(
	ctx context.Context,
	agentID int64,
	task *capabilityDomain.Task,
) (map[string]any, error) {
	args := m.Called(ctx, agentID, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// Capabilities mocks the Capabilities method of AgentUseCase.
func (m *MockAgentUseCase) Capabilities() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
