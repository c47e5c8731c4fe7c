// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// MockMarketplaceUseCase is a mock implementation of usecase.MarketplaceUseCase.
type MockMarketplaceUseCase struct {
	mock.Mock
}

func (m *MockMarketplaceUseCase) Create(
	ctx context.Context,
	input *domain.CreateListingInput,
) (*domain.Listing, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketplaceUseCase) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketplaceUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Listing, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *MockMarketplaceUseCase) Update(
	ctx context.Context,
	id int64,
	input *domain.UpdateListingInput,
) (*domain.Listing, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketplaceUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMarketplaceUseCase) Install(
	ctx context.Context,
	listingID int64,
) (*agentDomain.Agent, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentDomain.Agent), args.Error(1)
}
