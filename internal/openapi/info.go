// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles OpenAPI documents from route metadata.
package openapi

import (
	"sort"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/util"
	"github.com/api2spec/routedoc/pkg/types"
)

// GeneralInfoBuilder fills the document-level sections from configuration
// and resolves operation tags.
type GeneralInfoBuilder struct {
	config    *config.Config
	extractor metadata.Extractor

	// auto holds the derived tags of each operation; explicit marks
	// operations that received declared tags
	auto     map[*types.Operation][]string
	explicit map[*types.Operation]bool
}

// NewGeneralInfoBuilder creates an info builder for one pass.
func NewGeneralInfoBuilder(cfg *config.Config, extractor metadata.Extractor) *GeneralInfoBuilder {
	return &GeneralInfoBuilder{
		config:    cfg,
		extractor: extractor,
		auto:      make(map[*types.Operation][]string),
		explicit:  make(map[*types.Operation]bool),
	}
}

// Build sets info, servers, tags and security on doc.
func (b *GeneralInfoBuilder) Build(doc *types.OpenAPI) {
	doc.Info = b.buildInfo()
	doc.Servers = b.buildServers()
	doc.Tags = b.buildTags()

	if len(b.config.OpenAPI.Security.Schemes) > 0 {
		doc.Security = b.buildSecurity()
		if doc.Components == nil {
			doc.Components = &types.Components{}
		}
		doc.Components.SecuritySchemes = b.buildSecuritySchemes()
	}
}

// buildInfo constructs the Info object from configuration.
func (b *GeneralInfoBuilder) buildInfo() types.Info {
	info := types.Info{
		Title:          b.config.OpenAPI.Info.Title,
		Description:    b.config.OpenAPI.Info.Description,
		TermsOfService: b.config.OpenAPI.Info.TermsOfService,
		Version:        b.config.OpenAPI.Info.Version,
	}

	if b.config.OpenAPI.Info.Contact.Name != "" ||
		b.config.OpenAPI.Info.Contact.Email != "" ||
		b.config.OpenAPI.Info.Contact.URL != "" {
		info.Contact = &types.Contact{
			Name:  b.config.OpenAPI.Info.Contact.Name,
			URL:   b.config.OpenAPI.Info.Contact.URL,
			Email: b.config.OpenAPI.Info.Contact.Email,
		}
	}

	if b.config.OpenAPI.Info.License.Name != "" {
		info.License = &types.License{
			Name: b.config.OpenAPI.Info.License.Name,
			URL:  b.config.OpenAPI.Info.License.URL,
		}
	}

	return info
}

// buildServers constructs the servers list from configuration.
func (b *GeneralInfoBuilder) buildServers() []types.Server {
	if len(b.config.OpenAPI.Servers) == 0 {
		return nil
	}
	servers := make([]types.Server, 0, len(b.config.OpenAPI.Servers))
	for _, s := range b.config.OpenAPI.Servers {
		servers = append(servers, types.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return servers
}

// buildTags constructs the configured document tags.
func (b *GeneralInfoBuilder) buildTags() []types.Tag {
	var tags []types.Tag
	for _, t := range b.config.OpenAPI.Tags {
		tags = append(tags, types.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return tags
}

// buildSecurity constructs the global security requirements.
func (b *GeneralInfoBuilder) buildSecurity() []map[string][]string {
	if len(b.config.OpenAPI.Security.Default) == 0 {
		return nil
	}
	return securityRequirements(b.config.OpenAPI.Security.Default)
}

// buildSecuritySchemes constructs security scheme definitions.
func (b *GeneralInfoBuilder) buildSecuritySchemes() map[string]types.SecurityScheme {
	schemes := make(map[string]types.SecurityScheme)

	for name, cfg := range b.config.OpenAPI.Security.Schemes {
		schemes[name] = types.SecurityScheme{
			Type:         cfg.Type,
			Description:  cfg.Description,
			Name:         cfg.Name,
			In:           cfg.In,
			Scheme:       cfg.Scheme,
			BearerFormat: cfg.BearerFormat,
		}
	}

	return schemes
}

// BuildTags tags op for handler h. Declared tags are unioned with the
// operation's explicit tags and replace any derived one; without declared
// tags the operation gets the owner name in kebab case, unless it already
// carries explicit tags. Declared descriptions go to the document tag list.
func (b *GeneralInfoBuilder) BuildTags(h *metadata.Handler, op *types.Operation, doc *types.OpenAPI) {
	var declared []string
	for _, t := range b.extractor.Tags(h) {
		if t.Name == "" {
			continue
		}
		declared = append(declared, t.Name)
		if t.Description != "" && !doc.HasTag(t.Name) {
			doc.Tags = append(doc.Tags, types.Tag{Name: t.Name, Description: t.Description})
		}
	}
	if od := b.extractor.Operation(h); od != nil {
		declared = append(declared, od.Tags...)
	}

	if len(declared) > 0 {
		if derived := b.auto[op]; len(derived) > 0 {
			op.Tags = without(op.Tags, derived)
			delete(b.auto, op)
		}
		for _, t := range declared {
			if t != "" && !op.HasTag(t) {
				op.Tags = append(op.Tags, t)
			}
		}
		b.explicit[op] = true
		return
	}

	if b.explicit[op] || h.Owner == nil {
		return
	}
	tag := util.ToKebabCase(types.TypeRef{Name: h.Owner.Name}.SimpleName())
	if tag != "" && !op.HasTag(tag) {
		op.Tags = append(op.Tags, tag)
		b.auto[op] = append(b.auto[op], tag)
	}
}

func without(list, drop []string) []string {
	out := list[:0]
	for _, v := range list {
		if !containsString(drop, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedPaths returns a sorted list of path keys for deterministic output.
func SortedPaths(paths map[string]*types.PathItem) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedSchemas returns a sorted list of schema keys for deterministic output.
func SortedSchemas(schemas map[string]*types.Schema) []string {
	keys := make([]string, 0, len(schemas))
	for k := range schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
