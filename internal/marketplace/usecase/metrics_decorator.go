package usecase

import (
	"context"
	"time"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/marketplace/domain"
	"github.com/aistaff/platform/internal/metrics"
)

// marketplaceUseCaseWithMetrics decorates MarketplaceUseCase with metrics instrumentation.
type marketplaceUseCaseWithMetrics struct {
	next    MarketplaceUseCase
	metrics metrics.BusinessMetrics
}

// NewMarketplaceUseCaseWithMetrics wraps a MarketplaceUseCase with metrics recording.
func NewMarketplaceUseCaseWithMetrics(useCase MarketplaceUseCase, m metrics.BusinessMetrics) MarketplaceUseCase {
	return &marketplaceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for listing creation operations.
func (d *marketplaceUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateListingInput,
) (*domain.Listing, error) {
	start := time.Now()
	listing, err := d.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "create", status)
	d.metrics.RecordDuration(ctx, "marketplace", "create", time.Since(start), status)

	return listing, err
}

// Get records metrics for listing retrieval operations.
func (d *marketplaceUseCaseWithMetrics) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	start := time.Now()
	listing, err := d.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "get", status)
	d.metrics.RecordDuration(ctx, "marketplace", "get", time.Since(start), status)

	return listing, err
}

// List records metrics for listing list operations.
func (d *marketplaceUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Listing, error) {
	start := time.Now()
	listings, err := d.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "list", status)
	d.metrics.RecordDuration(ctx, "marketplace", "list", time.Since(start), status)

	return listings, err
}

// Update records metrics for listing update operations.
func (d *marketplaceUseCaseWithMetrics) Update(
	ctx context.Context,
	id int64,
	input *domain.UpdateListingInput,
) (*domain.Listing, error) {
	start := time.Now()
	listing, err := d.next.Update(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "update", status)
	d.metrics.RecordDuration(ctx, "marketplace", "update", time.Since(start), status)

	return listing, err
}

// Delete records metrics for listing deletion operations.
func (d *marketplaceUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "delete", status)
	d.metrics.RecordDuration(ctx, "marketplace", "delete", time.Since(start), status)

	return err
}

// Install records metrics for listing install operations.
func (d *marketplaceUseCaseWithMetrics) Install(
	ctx context.Context,
	listingID int64,
) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := d.next.Install(ctx, listingID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "marketplace", "install", status)
	d.metrics.RecordDuration(ctx, "marketplace", "install", time.Since(start), status)

	return agent, err
}
