// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema resolves declared types into OpenAPI schemas and keeps the
// component schemas produced during one computation pass.
package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/api2spec/routedoc/pkg/types"
)

// Key identifies a component by declared type and JSON view.
type Key struct {
	Type string
	View string
}

// Registry stores component schemas by name, content-addressed by Key so a
// repeated type resolves to the same entry. Entries are never removed.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*types.Schema
	names   map[Key]string
}

// NewRegistry creates a new component registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*types.Schema),
		names:   make(map[Key]string),
	}
}

// Reserve returns the component name for key. The first call for a key
// claims a name derived from base, suffixed when another key already holds
// it, and reports created=true; the caller must then Put the schema.
func (r *Registry) Reserve(key Key, base string) (name string, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.names[key]; ok {
		return name, false
	}

	name = base
	for n := 2; r.taken(name); n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	r.names[key] = name
	// Placeholder so recursive references see the name as taken.
	r.schemas[name] = nil
	return name, true
}

func (r *Registry) taken(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Put stores the schema for a reserved name.
func (r *Registry) Put(name string, schema *types.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[name] = schema
}

// Lookup returns the component name already assigned to key.
func (r *Registry) Lookup(key Key) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[key]
	return name, ok
}

// Get returns a schema by name.
func (r *Registry) Get(name string) (*types.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[name]
	return schema, ok && schema != nil
}

// Has checks if a schema exists in the registry.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// All returns a copy of every completed schema.
func (r *Registry) All() map[string]*types.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*types.Schema, len(r.schemas))
	for k, v := range r.schemas {
		if v != nil {
			result[k] = v
		}
	}
	return result
}

// Names returns all schema names in sorted order.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of schemas in the registry.
func (r *Registry) Count() int {
	return len(r.All())
}

// CopyTo adds every schema to components, keeping entries already there.
func (r *Registry) CopyTo(components *types.Components) {
	if components.Schemas == nil {
		components.Schemas = make(map[string]*types.Schema)
	}
	for name, s := range r.All() {
		if _, exists := components.Schemas[name]; !exists {
			components.Schemas[name] = s
		}
	}
}
