package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	capabilityDomain "github.com/aistaff/platform/internal/capability/domain"
	capabilityService "github.com/aistaff/platform/internal/capability/service"
)

// mockAgentRepository is a mock implementation of AgentRepository for testing.
type mockAgentRepository struct {
	mock.Mock
}

func (m *mockAgentRepository) Create(ctx context.Context, agent *agentDomain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *mockAgentRepository) Get(ctx context.Context, id int64) (*agentDomain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}

func (m *mockAgentRepository) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentDomain.Agent), args.Error(1)
}

func (m *mockAgentRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestUseCase(repo AgentRepository) AgentUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := capabilityService.NewEngine(capabilityService.NewRegistry(), logger)
	return NewAgentUseCase(repo, engine, logger)
}

func TestAgentUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_KeepsKnownCapabilities", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(agent *agentDomain.Agent) bool {
			return agent.Name == "writer" &&
				agent.Status == agentDomain.StatusInactive &&
				agent.IsActive &&
				len(agent.Capabilities) == 2
		})).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo)
		agent, err := uc.Create(ctx, &agentDomain.CreateAgentInput{
			Name:         "writer",
			Capabilities: []string{"text_processing", "automation"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"text_processing", "automation"}, agent.Capabilities)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_DropsUnknownCapabilities", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(agent *agentDomain.Agent) bool {
			return len(agent.Capabilities) == 1 && agent.Capabilities[0] == "text_processing"
		})).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo)
		agent, err := uc.Create(ctx, &agentDomain.CreateAgentInput{
			Name:         "writer",
			Capabilities: []string{"text_processing", "time_travel"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"text_processing"}, agent.Capabilities)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_AllCapabilitiesUnknownLeavesEmptyList", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(agent *agentDomain.Agent) bool {
			return len(agent.Capabilities) == 0
		})).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo)
		agent, err := uc.Create(ctx, &agentDomain.CreateAgentInput{
			Name:         "empty",
			Capabilities: []string{"time_travel"},
		})

		require.NoError(t, err)
		assert.Empty(t, agent.Capabilities)
		mockRepo.AssertExpectations(t)
	})
}

func TestAgentUseCase_RunTask(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DispatchesToMatchingCapability", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		agent := &agentDomain.Agent{
			ID:           3,
			Name:         "writer",
			Capabilities: []string{"text_processing"},
			IsActive:     true,
		}
		mockRepo.On("Get", ctx, int64(3)).
			Return(agent, nil).
			Once()

		uc := newTestUseCase(mockRepo)
		output, err := uc.RunTask(ctx, 3, &capabilityDomain.Task{
			Type: "text_processing",
			Data: map[string]any{"text": "hi"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, output["word_count"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		mockRepo.On("Get", ctx, int64(99)).
			Return(nil, agentDomain.ErrAgentNotFound).
			Once()

		uc := newTestUseCase(mockRepo)
		_, err := uc.RunTask(ctx, 99, &capabilityDomain.Task{Type: "text_processing"})

		assert.ErrorIs(t, err, agentDomain.ErrAgentNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NoMatchingCapability", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		agent := &agentDomain.Agent{
			ID:           3,
			Capabilities: []string{"automation"},
			IsActive:     true,
		}
		mockRepo.On("Get", ctx, int64(3)).
			Return(agent, nil).
			Once()

		uc := newTestUseCase(mockRepo)
		_, err := uc.RunTask(ctx, 3, &capabilityDomain.Task{Type: "text_processing"})

		assert.ErrorIs(t, err, capabilityDomain.ErrNoMatchingCapability)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_HandlerFailureIsStructured", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}

		agent := &agentDomain.Agent{
			ID:           3,
			Capabilities: []string{"data_analysis"},
			IsActive:     true,
		}
		mockRepo.On("Get", ctx, int64(3)).
			Return(agent, nil).
			Once()

		uc := newTestUseCase(mockRepo)
		_, err := uc.RunTask(ctx, 3, &capabilityDomain.Task{
			Type: "data_analysis",
			Data: map[string]any{},
		})

		var handlerErr *capabilityDomain.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, "data_analysis", handlerErr.Capability)
		mockRepo.AssertExpectations(t)
	})
}

func TestAgentUseCase_Capabilities(t *testing.T) {
	uc := newTestUseCase(&mockAgentRepository{})
	assert.Equal(t, []string{
		"text_processing",
		"data_analysis",
		"customer_service",
		"code_generation",
		"automation",
	}, uc.Capabilities())
}

func TestAgentUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SoftDeletes", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}
		mockRepo.On("SoftDelete", ctx, int64(3)).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo)
		assert.NoError(t, uc.Delete(ctx, 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockAgentRepository{}
		mockRepo.On("SoftDelete", ctx, int64(99)).
			Return(agentDomain.ErrAgentNotFound).
			Once()

		uc := newTestUseCase(mockRepo)
		assert.ErrorIs(t, uc.Delete(ctx, 99), agentDomain.ErrAgentNotFound)
		mockRepo.AssertExpectations(t)
	})
}
