// Package domain defines the marketplace listing entity and its errors.
package domain

import (
	"time"

	"github.com/aistaff/platform/internal/errors"
)

// Listing is a published agent template that can be installed as an agent.
type Listing struct {
	ID           int64
	Name         string
	Description  string
	Price        float64
	Author       string
	Capabilities []string
	Rating       float64
	Downloads    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateListingInput contains the parameters for publishing a listing.
type CreateListingInput struct {
	Name         string
	Description  string
	Price        float64
	Author       string
	Capabilities []string
}

// UpdateListingInput contains the mutable fields of a listing.
type UpdateListingInput struct {
	Name         string
	Description  string
	Price        float64
	Author       string
	Capabilities []string
}

// ErrListingNotFound is returned when a listing doesn't exist.
var ErrListingNotFound = errors.Wrap(errors.ErrNotFound, "listing not found")
