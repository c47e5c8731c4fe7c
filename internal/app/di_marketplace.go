package app

import (
	"fmt"

	marketplaceHTTP "github.com/aistaff/platform/internal/marketplace/http"
	marketplaceRepository "github.com/aistaff/platform/internal/marketplace/repository"
	marketplaceUseCase "github.com/aistaff/platform/internal/marketplace/usecase"
)

// ListingRepository returns the listing repository based on database driver.
func (c *Container) ListingRepository() (marketplaceUseCase.ListingRepository, error) {
	var err error
	c.listingRepositoryInit.Do(func() {
		c.listingRepository, err = c.initListingRepository()
		if err != nil {
			c.initErrors["listingRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["listingRepository"]; exists {
		return nil, storedErr
	}
	return c.listingRepository, nil
}

// MarketplaceUseCase returns the marketplace use case.
func (c *Container) MarketplaceUseCase() (marketplaceUseCase.MarketplaceUseCase, error) {
	var err error
	c.marketplaceUseCaseInit.Do(func() {
		c.marketplaceUseCase, err = c.initMarketplaceUseCase()
		if err != nil {
			c.initErrors["marketplaceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["marketplaceUseCase"]; exists {
		return nil, storedErr
	}
	return c.marketplaceUseCase, nil
}

// ListingHandler returns the HTTP handler for marketplace operations.
func (c *Container) ListingHandler() (*marketplaceHTTP.ListingHandler, error) {
	var err error
	c.listingHandlerInit.Do(func() {
		c.listingHandler, err = c.initListingHandler()
		if err != nil {
			c.initErrors["listingHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["listingHandler"]; exists {
		return nil, storedErr
	}
	return c.listingHandler, nil
}

// initListingRepository creates the listing repository based on the database driver.
func (c *Container) initListingRepository() (marketplaceUseCase.ListingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for listing repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return marketplaceRepository.NewPostgreSQLListingRepository(db), nil
	case "mysql":
		return marketplaceRepository.NewMySQLListingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMarketplaceUseCase creates the marketplace use case with all its dependencies.
func (c *Container) initMarketplaceUseCase() (marketplaceUseCase.MarketplaceUseCase, error) {
	listingRepo, err := c.ListingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get listing repository for marketplace use case: %w", err)
	}

	agentUC, err := c.AgentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent use case for marketplace use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for marketplace use case: %w", err)
	}

	baseUseCase := marketplaceUseCase.NewMarketplaceUseCase(listingRepo, agentUC, txManager, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for marketplace use case: %w", err)
		}
		return marketplaceUseCase.NewMarketplaceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initListingHandler creates the marketplace HTTP handler with all its dependencies.
func (c *Container) initListingHandler() (*marketplaceHTTP.ListingHandler, error) {
	marketplaceUC, err := c.MarketplaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get marketplace use case for listing handler: %w", err)
	}

	return marketplaceHTTP.NewListingHandler(marketplaceUC, c.Logger()), nil
}
