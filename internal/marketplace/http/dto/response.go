package dto

import (
	"time"

	agentDTO "github.com/aistaff/platform/internal/agent/http/dto"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// ListingResponse represents a marketplace listing in API responses.
type ListingResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Author       string    `json:"author"`
	Capabilities []string  `json:"capabilities"`
	Rating       float64   `json:"rating"`
	Downloads    int64     `json:"downloads"`
	CreatedAt    time.Time `json:"created_at"`
}

// MapListingToResponse converts a domain listing to an API response.
func MapListingToResponse(listing *domain.Listing) ListingResponse {
	capabilities := listing.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	return ListingResponse{
		ID:           listing.ID,
		Name:         listing.Name,
		Description:  listing.Description,
		Price:        listing.Price,
		Author:       listing.Author,
		Capabilities: capabilities,
		Rating:       listing.Rating,
		Downloads:    listing.Downloads,
		CreatedAt:    listing.CreatedAt,
	}
}

// ListListingsResponse represents a paginated list of listings in API responses.
type ListListingsResponse struct {
	Data []ListingResponse `json:"data"`
}

// MapListingsToListResponse converts a slice of domain listings to a list API response.
func MapListingsToListResponse(listings []*domain.Listing) ListListingsResponse {
	listingResponses := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		listingResponses = append(listingResponses, MapListingToResponse(listing))
	}
	return ListListingsResponse{
		Data: listingResponses,
	}
}

// InstallResponse contains the agent created from an installed listing.
type InstallResponse struct {
	Agent agentDTO.AgentResponse `json:"agent"`
}
