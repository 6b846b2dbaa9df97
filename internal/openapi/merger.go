// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

// PathMerger merges routes into the paths of a document under construction.
// A (path, verb) pair reached by several routes yields one operation,
// extended by each of them in order.
type PathMerger struct {
	doc       *types.OpenAPI
	extractor metadata.Extractor
	filter    *PathFilter

	defaultConsumes string
	defaultProduces string

	info       *GeneralInfoBuilder
	operations *OperationBuilder
	requests   *RequestBuilder
	responses  *ResponseBuilder

	// merged counts (path, verb) merges
	merged int
}

// NewPathMerger creates a merger writing into doc. The builders it owns
// share resolver, so every schema lands in one component registry.
func NewPathMerger(doc *types.OpenAPI, cfg *config.Config, extractor metadata.Extractor, resolver *schema.Resolver) *PathMerger {
	bodies := NewRequestBodyBuilder(resolver)
	return &PathMerger{
		doc:             doc,
		extractor:       extractor,
		filter:          NewPathFilter(cfg.Generation.PathsToMatch, cfg.Generation.PathsToExclude),
		defaultConsumes: cfg.Generation.DefaultConsumes,
		defaultProduces: cfg.Generation.DefaultProduces,
		info:            NewGeneralInfoBuilder(cfg, extractor),
		operations:      NewOperationBuilder(extractor, resolver),
		requests:        NewRequestBuilder(extractor, resolver, bodies),
		responses:       NewResponseBuilder(extractor, resolver),
	}
}

// Info returns the builder of document-level sections.
func (m *PathMerger) Info() *GeneralInfoBuilder {
	return m.info
}

// Responses returns the response builder, which holds the generic responses.
func (m *PathMerger) Responses() *ResponseBuilder {
	return m.responses
}

// MergeRoutes merges every route of the map in registration order.
func (m *PathMerger) MergeRoutes(routes *metadata.RouteMap) error {
	for _, h := range routes.Handlers() {
		if m.extractor.ControllerHidden(h.Owner) {
			continue
		}
		verbs, err := h.Methods()
		if err != nil {
			return err
		}
		for _, path := range h.Patterns() {
			if !m.filter.Allows(path) {
				continue
			}
			if err := m.MergeRoute(path, verbs, h); err != nil {
				return fmt.Errorf("merging %s: %w", h.ID, err)
			}
		}
	}
	return nil
}

// MergeRoute adds one route to the document for each verb.
func (m *PathMerger) MergeRoute(path string, verbs []types.HTTPMethod, h *metadata.Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for %s", path)
	}
	item := m.doc.Paths[path]

	for _, verb := range verbs {
		if m.operations.IsHidden(h) {
			continue
		}

		attrs := NewMethodAttributes(m.defaultConsumes, m.defaultProduces)
		op := item.Operation(verb)
		if op != nil {
			attrs.MethodOverloaded = true
		} else {
			op = types.NewOperation()
		}
		attrs.CalculateConsumesProduces(h)

		m.info.BuildTags(h, op, m.doc)

		doc := m.extractor.Operation(h)
		ignoreViews := doc != nil && doc.IgnoreJSONView
		attrs.ResolveJSONViews(m.extractor.JSONView(h), m.extractor.Params(h), ignoreViews)

		m.operations.Parse(doc, op)
		m.requests.Build(h, verb, op, attrs)
		op.Responses = m.responses.Build(h, op, attrs)
		m.operations.BuildCallbacks(h, op, attrs)
		m.operations.EnsureOperationID(h, op)

		if item == nil {
			item = &types.PathItem{}
			m.doc.Paths[path] = item
		}
		item.SetOperation(verb, op)
		m.merged++
	}
	return nil
}

// Merged returns how many (path, verb) merges were performed.
func (m *PathMerger) Merged() int {
	return m.merged
}
