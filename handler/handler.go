// Package handler provides the handler registry the orchestrator dispatches
// through, an LLM-backed Handler implementation with per-capability
// instructions, and a deterministic mock for tests.
package handler

import (
	"fmt"

	"github.com/agentroute/agentroute/core"
)

// Registry holds the handlers available for dispatch, keyed by capability.
// It is assembled once at startup and read-only afterwards; the orchestrator
// resolves the routed capability against it on every request.
type Registry struct {
	byCapability map[core.Capability]core.Handler
}

// NewRegistry builds a registry from the given handlers. Registering two
// handlers for the same capability is a configuration error. An empty
// registry returns core.ErrNoAgentsRegistered.
func NewRegistry(handlers ...core.Handler) (*Registry, error) {
	if len(handlers) == 0 {
		return nil, core.ErrNoAgentsRegistered
	}
	byCap := make(map[core.Capability]core.Handler, len(handlers))
	for _, h := range handlers {
		c := h.Capability()
		if _, err := core.ParseCapability(string(c)); err != nil {
			return nil, fmt.Errorf("handler registry: %w", err)
		}
		if _, dup := byCap[c]; dup {
			return nil, fmt.Errorf("handler registry: duplicate handler for capability %q", c)
		}
		byCap[c] = h
	}
	return &Registry{byCapability: byCap}, nil
}

// Resolve returns the handler for the capability, or an error when none is
// registered for it.
func (r *Registry) Resolve(c core.Capability) (core.Handler, error) {
	h, ok := r.byCapability[c]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for capability %q", core.ErrHandlerFailure, c)
	}
	return h, nil
}

// Has reports whether a handler is registered for the capability.
func (r *Registry) Has(c core.Capability) bool {
	_, ok := r.byCapability[c]
	return ok
}

// Capabilities returns the registered capabilities in declaration order.
func (r *Registry) Capabilities() []core.Capability {
	out := make([]core.Capability, 0, len(r.byCapability))
	for _, c := range core.Capabilities() {
		if _, ok := r.byCapability[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len reports the number of registered handlers.
func (r *Registry) Len() int { return len(r.byCapability) }
