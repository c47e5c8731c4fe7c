package service

import (
	"fmt"
	"log/slog"

	"github.com/aistaff/platform/internal/capability/domain"
)

// Engine dispatches tasks to capability handlers with a fault boundary
// around every invocation.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// NewEngine creates a dispatch engine over the given registry.
func NewEngine(registry *Registry, logger *slog.Logger) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// Registry exposes the engine's capability registry for configuration checks.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Execute invokes the named capability with the given input.
//
// Returns ErrUnknownCapability if the name is not registered, without
// invoking anything. Handler errors and panics are converted to a
// HandlerError and never propagated raw, so one malfunctioning capability
// cannot crash the dispatching process.
func (e *Engine) Execute(name string, input map[string]any) (output map[string]any, err error) {
	handler, ok := e.registry.Get(name)
	if !ok {
		return nil, domain.ErrUnknownCapability
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("capability handler panicked",
				slog.String("capability", name),
				slog.Any("panic", r))
			output = nil
			err = &domain.HandlerError{
				Capability: name,
				Message:    fmt.Sprintf("%v", r),
			}
		}
	}()

	output, handlerErr := handler(input)
	if handlerErr != nil {
		e.logger.Warn("capability handler failed",
			slog.String("capability", name),
			slog.String("error", handlerErr.Error()))
		return nil, &domain.HandlerError{
			Capability: name,
			Message:    handlerErr.Error(),
		}
	}

	return output, nil
}

// RunTask executes a task against an agent's configured capability list.
//
// The list is scanned in stored order and the first entry equal to the task
// type is executed. Stored order acts as a priority signal, so this is a
// linear scan rather than a map lookup. Returns ErrNoMatchingCapability when
// no entry matches.
func (e *Engine) RunTask(capabilities []string, task *domain.Task) (map[string]any, error) {
	for _, name := range capabilities {
		if name == task.Type {
			return e.Execute(name, task.Data)
		}
	}
	return nil, domain.ErrNoMatchingCapability
}
