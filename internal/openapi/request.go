// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

// RequestBuilder derives the parameters and request body of an operation.
type RequestBuilder struct {
	extractor metadata.Extractor
	resolver  *schema.Resolver
	bodies    *RequestBodyBuilder
}

// NewRequestBuilder creates a request builder.
func NewRequestBuilder(extractor metadata.Extractor, resolver *schema.Resolver, bodies *RequestBodyBuilder) *RequestBuilder {
	return &RequestBuilder{extractor: extractor, resolver: resolver, bodies: bodies}
}

// Build adds the handler's parameters and request body to op. Signature
// parameters come first and operation documentation refines them by
// (location, name); a hidden documented parameter removes its match.
func (b *RequestBuilder) Build(h *metadata.Handler, verb types.HTTPMethod, op *types.Operation, attrs *MethodAttributes) {
	params := b.extractor.Params(h)

	var built []types.Parameter
	var bodyParams []metadata.Param
	for _, p := range params {
		if p.IsBody() {
			if verb != types.MethodGet {
				bodyParams = append(bodyParams, p)
			}
			continue
		}
		built = append(built, b.parameter(p, attrs.JSONView))
	}

	if doc := b.extractor.Operation(h); doc != nil {
		for _, pd := range doc.Parameters {
			if pd.Hidden {
				built = removeParameter(built, pd.In, pd.Name)
				continue
			}
			built = mergeParameters(built, []types.Parameter{b.documented(pd)})
		}
		if len(doc.Security) > 0 {
			op.Security = securityRequirements(doc.Security)
		}
	}
	for i := range built {
		if built[i].Schema == nil {
			built[i].Schema = &types.Schema{Type: "string"}
		}
	}

	op.Parameters = mergeParameters(op.Parameters, built)
	b.bodies.Compose(op, attrs, bodyParams, b.extractor.RequestBody(h))
}

func (b *RequestBuilder) parameter(p metadata.Param, view string) types.Parameter {
	param := types.Parameter{
		Name:        p.Name,
		In:          p.In,
		Description: p.Description,
		Required:    p.Required || p.In == metadata.LocationPath,
	}
	if t, err := types.ParseTypeRef(p.Type); err == nil {
		param.Schema = b.resolver.SchemaFor(t, view)
	}
	if param.Schema == nil {
		param.Schema = &types.Schema{Type: "string"}
	}
	return param
}

func (b *RequestBuilder) documented(pd metadata.ParameterDoc) types.Parameter {
	return documentedParameter(b.resolver, pd)
}

// documentedParameter converts parameter documentation. The schema is left
// nil when no type is declared so merging keeps a signature-derived one.
func documentedParameter(resolver *schema.Resolver, pd metadata.ParameterDoc) types.Parameter {
	param := types.Parameter{
		Name:        pd.Name,
		In:          pd.In,
		Description: pd.Description,
		Required:    pd.Required || pd.In == metadata.LocationPath,
		Deprecated:  pd.Deprecated,
	}
	if pd.Example != "" {
		param.Example = pd.Example
	}
	if pd.Type != "" {
		if t, err := types.ParseTypeRef(pd.Type); err == nil {
			param.Schema = resolver.SchemaFor(t, "")
		}
	}
	return param
}

// mergeParameters folds next into existing by (location, name). Fields set
// on the incoming parameter replace the existing ones; new parameters are
// appended in order.
func mergeParameters(existing, next []types.Parameter) []types.Parameter {
	for _, p := range next {
		i := indexParameter(existing, p.In, p.Name)
		if i < 0 {
			existing = append(existing, p)
			continue
		}
		cur := &existing[i]
		if p.Description != "" {
			cur.Description = p.Description
		}
		if p.Schema != nil {
			cur.Schema = p.Schema
		}
		if p.Example != nil {
			cur.Example = p.Example
		}
		cur.Required = cur.Required || p.Required
		cur.Deprecated = cur.Deprecated || p.Deprecated
	}
	return existing
}

func removeParameter(params []types.Parameter, in, name string) []types.Parameter {
	if i := indexParameter(params, in, name); i >= 0 {
		return append(params[:i], params[i+1:]...)
	}
	return params
}

func indexParameter(params []types.Parameter, in, name string) int {
	for i, p := range params {
		if p.Name == name && (in == "" || p.In == in) {
			return i
		}
	}
	return -1
}

func securityRequirements(names []string) []map[string][]string {
	out := make([]map[string][]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string][]string{n: {}})
	}
	return out
}
