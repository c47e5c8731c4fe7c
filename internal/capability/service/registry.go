// Package service implements the capability registry and the task dispatch engine.
package service

import (
	"github.com/aistaff/platform/internal/capability/domain"
)

// Registry maps capability names to handlers. It is built once at process
// start and is read-only afterwards, so concurrent reads need no locking.
type Registry struct {
	order    []string
	handlers map[string]domain.Handler
}

// NewRegistry creates a registry with the built-in capability set.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]domain.Handler),
	}
	for _, entry := range builtinHandlers() {
		r.register(entry.name, entry.handler)
	}
	return r
}

// register adds a handler under the given name, preserving registration order.
func (r *Registry) register(name string, handler domain.Handler) {
	if _, exists := r.handlers[name]; exists {
		return
	}
	r.order = append(r.order, name)
	r.handlers[name] = handler
}

// Names returns the capability names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Get returns the handler registered under the given name.
func (r *Registry) Get(name string) (domain.Handler, bool) {
	handler, ok := r.handlers[name]
	return handler, ok
}

// Has reports whether a capability name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}
