// Package usecase implements business logic orchestration for marketplace operations.
package usecase

import (
	"context"
	"log/slog"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	agentUseCase "github.com/aistaff/platform/internal/agent/usecase"
	"github.com/aistaff/platform/internal/database"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// marketplaceUseCase implements MarketplaceUseCase for listing lifecycle and installs.
type marketplaceUseCase struct {
	listingRepo ListingRepository
	agentUC     agentUseCase.AgentUseCase
	txManager   database.TxManager
	logger      *slog.Logger
}

// Create publishes a new listing with zeroed rating and downloads.
func (m *marketplaceUseCase) Create(
	ctx context.Context,
	input *domain.CreateListingInput,
) (*domain.Listing, error) {
	listing := &domain.Listing{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Author:       input.Author,
		Capabilities: input.Capabilities,
	}

	if err := m.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	m.logger.Info("created listing",
		slog.Int64("listing_id", listing.ID),
		slog.String("name", listing.Name))

	return listing, nil
}

// Get retrieves a listing by ID.
func (m *marketplaceUseCase) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	return m.listingRepo.Get(ctx, id)
}

// List retrieves listings with pagination.
func (m *marketplaceUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Listing, error) {
	return m.listingRepo.List(ctx, offset, limit)
}

// Update replaces the mutable fields of a listing. Rating and downloads are
// maintained by the system and cannot be set through this operation.
func (m *marketplaceUseCase) Update(
	ctx context.Context,
	id int64,
	input *domain.UpdateListingInput,
) (*domain.Listing, error) {
	listing, err := m.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	listing.Name = input.Name
	listing.Description = input.Description
	listing.Price = input.Price
	listing.Author = input.Author
	listing.Capabilities = input.Capabilities

	if err := m.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete removes a listing permanently.
func (m *marketplaceUseCase) Delete(ctx context.Context, id int64) error {
	if err := m.listingRepo.Delete(ctx, id); err != nil {
		return err
	}

	m.logger.Info("deleted listing", slog.Int64("listing_id", id))
	return nil
}

// Install converts a listing into an agent.
//
// The download counter bump and the agent creation run inside one
// transaction, so a failed install never skews the download count. The
// agent inherits the listing's name, description and capability list, with
// the usual unknown-capability filtering applied.
func (m *marketplaceUseCase) Install(ctx context.Context, listingID int64) (*agentDomain.Agent, error) {
	var agent *agentDomain.Agent

	err := m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := m.listingRepo.Get(txCtx, listingID)
		if err != nil {
			return err
		}

		if err := m.listingRepo.IncrementDownloads(txCtx, listingID); err != nil {
			return err
		}

		agent, err = m.agentUC.Create(txCtx, &agentDomain.CreateAgentInput{
			Name:         listing.Name,
			Description:  listing.Description,
			Capabilities: listing.Capabilities,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("installed listing as agent",
		slog.Int64("listing_id", listingID),
		slog.Int64("agent_id", agent.ID))

	return agent, nil
}

// NewMarketplaceUseCase creates a new MarketplaceUseCase with the provided dependencies.
func NewMarketplaceUseCase(
	listingRepo ListingRepository,
	agentUC agentUseCase.AgentUseCase,
	txManager database.TxManager,
	logger *slog.Logger,
) MarketplaceUseCase {
	return &marketplaceUseCase{
		listingRepo: listingRepo,
		agentUC:     agentUC,
		txManager:   txManager,
		logger:      logger,
	}
}
