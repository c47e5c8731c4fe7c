package domain

import (
	"fmt"

	"github.com/aistaff/platform/internal/errors"
)

var (
	// ErrUnknownCapability is returned when a capability name is not registered.
	ErrUnknownCapability = errors.Wrap(errors.ErrNotFound, "unknown capability")

	// ErrNoMatchingCapability is returned when a task type matches none of an
	// agent's configured capabilities.
	ErrNoMatchingCapability = errors.Wrap(errors.ErrInvalidInput, "no matching capability for task type")
)

// HandlerError reports a failure inside a single capability handler. The
// dispatch boundary converts every handler error and panic into this type so
// a malfunctioning capability cannot abort the surrounding request.
type HandlerError struct {
	Capability string
	Message    string
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("capability %q failed: %s", e.Capability, e.Message)
}
