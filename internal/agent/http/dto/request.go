// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/aistaff/platform/internal/validation"
)

// CreateAgentRequest contains the parameters for creating a new agent.
type CreateAgentRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

// Validate checks if the create agent request is valid.
func (r *CreateAgentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// RunTaskRequest contains a task submitted against an agent.
type RunTaskRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Validate checks if the run task request is valid.
func (r *RunTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
