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
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// mockListingRepository is a mock implementation of ListingRepository for testing.
type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListingRepository) List(ctx context.Context, offset, limit int) ([]*domain.Listing, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *mockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockListingRepository) IncrementDownloads(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockAgentUseCase is a mock implementation of agentUseCase.AgentUseCase for testing.
type mockAgentUseCase struct {
	mock.Mock
}

func (m *mockAgentUseCase) Create(
	ctx context.Context,
	input *agentDomain.CreateAgentInput,
) (*agentDomain.Agent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}

func (m *mockAgentUseCase) Get(ctx context.Context, id int64) (*agentDomain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}

func (m *mockAgentUseCase) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentDomain.Agent), args.Error(1)
}

func (m *mockAgentUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAgentUseCase) RunTask(
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

func (m *mockAgentUseCase) Capabilities() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// fakeTxManager runs the function directly, no real transaction involved.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(repo ListingRepository, agentUC *mockAgentUseCase) MarketplaceUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMarketplaceUseCase(repo, agentUC, fakeTxManager{}, logger)
}

func testListing() *domain.Listing {
	return &domain.Listing{
		ID:           5,
		Name:         "Writer Pro",
		Description:  "a writing agent",
		Price:        9.99,
		Author:       "acme",
		Capabilities: []string{"text_processing"},
		Rating:       4.5,
		Downloads:    10,
	}
}

func TestMarketplaceUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesListing", func(t *testing.T) {
		mockRepo := &mockListingRepository{}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(listing *domain.Listing) bool {
			return listing.Name == "Writer Pro" &&
				listing.Downloads == 0 &&
				listing.Rating == 0
		})).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo, &mockAgentUseCase{})
		listing, err := uc.Create(ctx, &domain.CreateListingInput{
			Name:         "Writer Pro",
			Description:  "a writing agent",
			Price:        9.99,
			Author:       "acme",
			Capabilities: []string{"text_processing"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Writer Pro", listing.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestMarketplaceUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReplacesMutableFields", func(t *testing.T) {
		mockRepo := &mockListingRepository{}

		mockRepo.On("Get", ctx, int64(5)).
			Return(testListing(), nil).
			Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(listing *domain.Listing) bool {
			return listing.ID == 5 &&
				listing.Name == "Writer Ultra" &&
				listing.Price == 19.99 &&
				listing.Downloads == 10
		})).
			Return(nil).
			Once()

		uc := newTestUseCase(mockRepo, &mockAgentUseCase{})
		listing, err := uc.Update(ctx, 5, &domain.UpdateListingInput{
			Name:         "Writer Ultra",
			Description:  "a writing agent",
			Price:        19.99,
			Author:       "acme",
			Capabilities: []string{"text_processing"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Writer Ultra", listing.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockListingRepository{}

		mockRepo.On("Get", ctx, int64(99)).
			Return(nil, domain.ErrListingNotFound).
			Once()

		uc := newTestUseCase(mockRepo, &mockAgentUseCase{})
		_, err := uc.Update(ctx, 99, &domain.UpdateListingInput{})

		assert.ErrorIs(t, err, domain.ErrListingNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestMarketplaceUseCase_Install(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_BumpsDownloadsAndCreatesAgent", func(t *testing.T) {
		mockRepo := &mockListingRepository{}
		mockAgentUC := &mockAgentUseCase{}

		mockRepo.On("Get", ctx, int64(5)).
			Return(testListing(), nil).
			Once()
		mockRepo.On("IncrementDownloads", ctx, int64(5)).
			Return(nil).
			Once()
		mockAgentUC.On("Create", ctx, mock.MatchedBy(func(input *agentDomain.CreateAgentInput) bool {
			return input.Name == "Writer Pro" &&
				len(input.Capabilities) == 1 &&
				input.Capabilities[0] == "text_processing"
		})).
			Return(&agentDomain.Agent{ID: 7, Name: "Writer Pro"}, nil).
			Once()

		uc := newTestUseCase(mockRepo, mockAgentUC)
		agent, err := uc.Install(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(7), agent.ID)
		mockRepo.AssertExpectations(t)
		mockAgentUC.AssertExpectations(t)
	})

	t.Run("Error_ListingNotFound", func(t *testing.T) {
		mockRepo := &mockListingRepository{}
		mockAgentUC := &mockAgentUseCase{}

		mockRepo.On("Get", ctx, int64(99)).
			Return(nil, domain.ErrListingNotFound).
			Once()

		uc := newTestUseCase(mockRepo, mockAgentUC)
		agent, err := uc.Install(ctx, 99)

		assert.ErrorIs(t, err, domain.ErrListingNotFound)
		assert.Nil(t, agent)
		mockRepo.AssertExpectations(t)
		mockAgentUC.AssertExpectations(t)
	})

	t.Run("Error_AgentCreationFailureAbortsInstall", func(t *testing.T) {
		mockRepo := &mockListingRepository{}
		mockAgentUC := &mockAgentUseCase{}

		mockRepo.On("Get", ctx, int64(5)).
			Return(testListing(), nil).
			Once()
		mockRepo.On("IncrementDownloads", ctx, int64(5)).
			Return(nil).
			Once()
		mockAgentUC.On("Create", ctx, mock.Anything).
			Return(nil, assert.AnError).
			Once()

		uc := newTestUseCase(mockRepo, mockAgentUC)
		agent, err := uc.Install(ctx, 5)

		assert.Error(t, err)
		assert.Nil(t, agent)
		mockRepo.AssertExpectations(t)
		mockAgentUC.AssertExpectations(t)
	})
}
