// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package metadata

import (
	"errors"
	"fmt"
)

// ErrInvalidManifest is returned when route metadata cannot be used.
var ErrInvalidManifest = errors.New("invalid route manifest")

// RouteMap maps route identifiers to handlers, preserving registration order.
type RouteMap struct {
	ids  []string
	byID map[string]*Handler
}

// NewRouteMap creates an empty route map.
func NewRouteMap() *RouteMap {
	return &RouteMap{byID: make(map[string]*Handler)}
}

// Add registers a handler under its ID. A handler without an ID gets
// "Owner#name", suffixed with a counter when that is already taken.
func (m *RouteMap) Add(h *Handler) error {
	if h == nil {
		return fmt.Errorf("%w: nil handler", ErrInvalidManifest)
	}
	if h.ID == "" {
		base := h.Name
		if h.Owner != nil {
			base = h.Owner.Name + "#" + h.Name
		}
		h.ID = base
		for n := 1; m.byID[h.ID] != nil; n++ {
			h.ID = fmt.Sprintf("%s(%d)", base, n)
		}
	}
	if _, exists := m.byID[h.ID]; exists {
		return fmt.Errorf("%w: duplicate route id %q", ErrInvalidManifest, h.ID)
	}
	m.ids = append(m.ids, h.ID)
	m.byID[h.ID] = h
	return nil
}

// Get returns the handler registered under id.
func (m *RouteMap) Get(id string) (*Handler, bool) {
	h, ok := m.byID[id]
	return h, ok
}

// IDs returns route identifiers in registration order.
func (m *RouteMap) IDs() []string {
	return append([]string(nil), m.ids...)
}

// Handlers returns handlers in registration order.
func (m *RouteMap) Handlers() []*Handler {
	out := make([]*Handler, len(m.ids))
	for i, id := range m.ids {
		out[i] = m.byID[id]
	}
	return out
}

// Len returns the number of registered routes.
func (m *RouteMap) Len() int {
	return len(m.ids)
}

// Registry is everything one computation pass reads: controllers with
// their handlers, controller-advice types, and model definitions.
type Registry struct {
	Routes *RouteMap
	Advice []*Controller
	Models map[string]*Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Routes: NewRouteMap(),
		Models: make(map[string]*Model),
	}
}

// AddController registers a controller. Advice controllers are kept apart;
// their handlers are never routes.
func (r *Registry) AddController(c *Controller) error {
	if c.Name == "" {
		return fmt.Errorf("%w: controller without a name", ErrInvalidManifest)
	}
	for _, h := range c.Handlers {
		h.Owner = c
	}
	if c.Advice {
		r.Advice = append(r.Advice, c)
		return nil
	}
	for _, h := range c.Handlers {
		if err := r.Routes.Add(h); err != nil {
			return err
		}
	}
	return nil
}

// AddModel registers a model definition. A later definition replaces an
// earlier one with the same name.
func (r *Registry) AddModel(m *Model) error {
	if m.Name == "" {
		return fmt.Errorf("%w: model without a name", ErrInvalidManifest)
	}
	r.Models[m.Name] = m
	return nil
}

// Source supplies a fresh registry for each computation pass.
type Source interface {
	Load() (*Registry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (*Registry, error)

// Load calls f.
func (f SourceFunc) Load() (*Registry, error) {
	return f()
}

// Static returns a Source that always yields r.
func Static(r *Registry) Source {
	return SourceFunc(func() (*Registry, error) { return r, nil })
}
