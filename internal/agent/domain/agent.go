// Package domain defines the core agent entity and its errors.
package domain

import (
	"time"

	"github.com/aistaff/platform/internal/errors"
)

// Agent statuses.
const (
	StatusInactive = "inactive"
	StatusActive   = "active"
)

// Agent is a configured worker with an ordered capability list. The order
// of the list is a priority signal for task dispatch.
type Agent struct {
	ID           int64
	Name         string
	Description  string
	Capabilities []string
	Status       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAgentInput contains the parameters for creating a new agent.
type CreateAgentInput struct {
	Name         string
	Description  string
	Capabilities []string
}

// ErrAgentNotFound is returned when an agent doesn't exist or was soft deleted.
var ErrAgentNotFound = errors.Wrap(errors.ErrNotFound, "agent not found")
