// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/aistaff/platform/internal/validation"
)

// CreateListingRequest contains the parameters for publishing a new listing.
type CreateListingRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Author       string   `json:"author"`
	Capabilities []string `json:"capabilities"`
}

// Validate checks if the create listing request is valid.
func (r *CreateListingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
		validation.Field(&r.Price,
			validation.Min(0.0),
		),
		validation.Field(&r.Author,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// UpdateListingRequest contains the replacement values for a listing.
// Rating and downloads are system maintained and cannot be set here.
type UpdateListingRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Author       string   `json:"author"`
	Capabilities []string `json:"capabilities"`
}

// Validate checks if the update listing request is valid.
func (r *UpdateListingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
		validation.Field(&r.Price,
			validation.Min(0.0),
		),
		validation.Field(&r.Author,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
