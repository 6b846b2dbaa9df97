// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Generation.SortTags = false
	return cfg
}

func testModels() map[string]*metadata.Model {
	return map[string]*metadata.Model{
		"Widget": {
			Name: "Widget",
			Fields: []metadata.Field{
				{Name: "id", Type: "Long", Required: true},
				{Name: "name", Type: "String"},
				{Name: "secret", Type: "String", Views: []string{"Internal"}},
			},
		},
		"Gadget": {
			Name:   "Gadget",
			Fields: []metadata.Field{{Name: "serial", Type: "String"}},
		},
		"ErrorBody": {
			Name:   "ErrorBody",
			Fields: []metadata.Field{{Name: "message", Type: "String"}},
		},
		"SubscriptionResponse": {
			Name:   "SubscriptionResponse",
			Fields: []metadata.Field{{Name: "subscriptionUuid", Type: "String"}},
		},
	}
}

type fixture struct {
	doc      *types.OpenAPI
	merger   *PathMerger
	resolver *schema.Resolver
}

func newFixture(cfg *config.Config) *fixture {
	doc := types.NewDocument(cfg.OpenAPI.Version)
	resolver := schema.NewResolver(
		schema.NewRegistry(),
		schema.NewModelConverter(testModels()),
		schema.RulesFor(cfg.Generation.Flavor),
	)
	return &fixture{
		doc:      doc,
		merger:   NewPathMerger(doc, cfg, metadata.NewAnnotationExtractor(), resolver),
		resolver: resolver,
	}
}

// merge merges h on path for its declared verbs.
func (f *fixture) merge(path string, h *metadata.Handler) {
	verbs, err := h.Methods()
	if err != nil {
		panic(err)
	}
	if err := f.merger.MergeRoute(path, verbs, h); err != nil {
		panic(err)
	}
}

// components copies registered schemas into the document and returns them.
func (f *fixture) components() map[string]*types.Schema {
	f.resolver.Registry().CopyTo(f.doc.Components)
	return f.doc.Components.Schemas
}

func controller(name string, handlers ...*metadata.Handler) *metadata.Controller {
	c := &metadata.Controller{Name: name, Handlers: handlers}
	for _, h := range handlers {
		h.Owner = c
	}
	return c
}

func mapping(methods ...string) metadata.Mapping {
	return metadata.Mapping{Methods: methods}
}

func boolPtr(b bool) *bool {
	return &b
}
