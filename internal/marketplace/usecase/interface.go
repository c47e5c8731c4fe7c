// Package usecase defines business logic interfaces for marketplace operations.
package usecase

import (
	"context"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// ListingRepository defines persistence operations for marketplace listings.
// Implementations must support transaction-aware operations via context propagation.
type ListingRepository interface {
	// Create stores a new listing in the repository.
	Create(ctx context.Context, listing *domain.Listing) error

	// Get retrieves a listing by ID. Returns ErrListingNotFound if not found.
	Get(ctx context.Context, id int64) (*domain.Listing, error)

	// List retrieves listings with pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Listing, error)

	// Update replaces the mutable fields of a listing.
	Update(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing permanently.
	Delete(ctx context.Context, id int64) error

	// IncrementDownloads bumps the download counter by one.
	IncrementDownloads(ctx context.Context, id int64) error
}

// MarketplaceUseCase defines business logic operations for listings and installs.
type MarketplaceUseCase interface {
	// Create publishes a new listing.
	Create(ctx context.Context, input *domain.CreateListingInput) (*domain.Listing, error)

	// Get retrieves a listing by ID.
	Get(ctx context.Context, id int64) (*domain.Listing, error)

	// List retrieves listings with pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Listing, error)

	// Update replaces the mutable fields of a listing.
	Update(ctx context.Context, id int64, input *domain.UpdateListingInput) (*domain.Listing, error)

	// Delete removes a listing permanently.
	Delete(ctx context.Context, id int64) error

	// Install converts a listing into an agent. The download counter bump
	// and the agent creation happen in one transaction.
	Install(ctx context.Context, listingID int64) (*agentDomain.Agent, error)
}
