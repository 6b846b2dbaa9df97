// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

// RequestBodyInfo accumulates the body contributors of one operation.
type RequestBodyInfo struct {
	mergedSchema *types.Schema
	nbParams     int
}

// NewRequestBodyInfo creates the accumulator. Form uploads get their object
// schema up front.
func NewRequestBodyInfo(attrs *MethodAttributes) *RequestBodyInfo {
	info := &RequestBodyInfo{}
	if attrs != nil && attrs.HasMultipart() {
		info.mergedSchema = types.NewObjectSchema()
	}
	return info
}

// IncrementParams counts one more contributing parameter.
func (i *RequestBodyInfo) IncrementParams() {
	i.nbParams++
}

// Params returns the number of contributors counted so far.
func (i *RequestBodyInfo) Params() int {
	return i.nbParams
}

// MergedSchema returns the composite object, creating it once more than
// one parameter contributes. It is nil otherwise.
func (i *RequestBodyInfo) MergedSchema() *types.Schema {
	if i.mergedSchema == nil && i.nbParams > 1 {
		i.mergedSchema = types.NewObjectSchema()
	}
	return i.mergedSchema
}

// InitMergedSchema forces the composite object into existence.
func (i *RequestBodyInfo) InitMergedSchema() *types.Schema {
	if i.mergedSchema == nil {
		i.mergedSchema = types.NewObjectSchema()
	}
	return i.mergedSchema
}

// RequestBodyBuilder composes request bodies from documentation and the
// body parameters of a handler.
type RequestBodyBuilder struct {
	resolver *schema.Resolver
}

// NewRequestBodyBuilder creates a request body builder.
func NewRequestBodyBuilder(resolver *schema.Resolver) *RequestBodyBuilder {
	return &RequestBodyBuilder{resolver: resolver}
}

// Compose builds the request body of op and stores it, merging with a body
// left by an earlier route. Documentation with content fully determines the
// body; otherwise the body parameters do.
func (b *RequestBodyBuilder) Compose(op *types.Operation, attrs *MethodAttributes, params []metadata.Param, doc *metadata.RequestBodyDoc) {
	body := b.fromDoc(doc, attrs)
	if body == nil || len(body.Content) == 0 {
		derived := b.fromParams(attrs, params)
		switch {
		case derived == nil:
		case body == nil:
			body = derived
		default:
			body.Content = derived.Content
			if doc.Required == nil {
				body.Required = derived.Required
			}
		}
	}
	if body == nil {
		return
	}
	op.RequestBody = mergeRequestBody(op.RequestBody, body)
}

func (b *RequestBodyBuilder) fromDoc(doc *metadata.RequestBodyDoc, attrs *MethodAttributes) *types.RequestBody {
	if doc == nil {
		return nil
	}
	body := &types.RequestBody{Description: doc.Description}
	if doc.Required != nil {
		body.Required = *doc.Required
	}
	for _, c := range doc.Content {
		s := b.schemaOf(c.Type, attrs.RequestBodyJSONView)
		for _, mt := range mediaTypesFor(c.MediaType, attrs.MethodConsumes) {
			if body.Content == nil {
				body.Content = make(map[string]types.MediaType)
			}
			body.Content[mt] = types.MediaType{Schema: s.Clone()}
		}
	}
	return body
}

func (b *RequestBodyBuilder) fromParams(attrs *MethodAttributes, params []metadata.Param) *types.RequestBody {
	info := NewRequestBodyInfo(attrs)
	var contributors []metadata.Param
	for _, p := range params {
		if p.IsBody() {
			contributors = append(contributors, p)
			info.IncrementParams()
		}
	}
	if len(contributors) == 0 {
		return nil
	}

	var single *types.Schema
	body := &types.RequestBody{}
	for _, p := range contributors {
		s := b.schemaOf(p.Type, attrs.RequestBodyJSONView)
		if s == nil {
			s = &types.Schema{Type: "object"}
		}
		if p.RequestBody != nil {
			if p.RequestBody.Description != "" {
				body.Description = p.RequestBody.Description
			}
			if p.RequestBody.Required != nil {
				p.Required = *p.RequestBody.Required
			}
		}

		merged := info.MergedSchema()
		if merged == nil && s.IsFile() {
			merged = info.InitMergedSchema()
		}
		if merged != nil {
			merged.AddProperty(p.Name, s, p.Required)
			body.Required = body.Required || p.Required
			continue
		}
		single = s
		body.Required = p.Required
	}

	s := single
	if merged := info.MergedSchema(); merged != nil {
		s = merged
	}
	mediaTypes := attrs.MethodConsumes
	if s.Ref == "" && hasFileProperty(s) && !attrs.HasMultipart() {
		mediaTypes = []string{MediaTypeMultipart}
	}
	body.Content = make(map[string]types.MediaType, len(mediaTypes))
	for _, mt := range mediaTypes {
		body.Content[mt] = types.MediaType{Schema: s.Clone()}
	}
	return body
}

func (b *RequestBodyBuilder) schemaOf(declared, view string) *types.Schema {
	if declared == "" {
		return nil
	}
	t, err := types.ParseTypeRef(declared)
	if err != nil {
		return nil
	}
	return b.resolver.SchemaFor(t, view)
}

func hasFileProperty(s *types.Schema) bool {
	for _, p := range s.Properties {
		if p.IsFile() {
			return true
		}
	}
	return false
}

// mediaTypesFor returns the declared media type, or the consumed ones when
// none is declared.
func mediaTypesFor(declared string, fallback []string) []string {
	if declared != "" {
		return []string{declared}
	}
	if len(fallback) == 0 {
		return []string{"*/*"}
	}
	return fallback
}

// mergeRequestBody folds next into an existing body. Set fields of next
// win; a media type present in both with different schemas becomes a oneOf.
func mergeRequestBody(existing, next *types.RequestBody) *types.RequestBody {
	if existing == nil {
		return next
	}
	if next.Description != "" {
		existing.Description = next.Description
	}
	existing.Required = existing.Required || next.Required
	existing.Content = mergeContent(existing.Content, next.Content)
	return existing
}

func mergeContent(existing, next map[string]types.MediaType) map[string]types.MediaType {
	if len(next) == 0 {
		return existing
	}
	if existing == nil {
		existing = make(map[string]types.MediaType, len(next))
	}
	for mt, media := range next {
		if prev, ok := existing[mt]; ok {
			media.Schema = types.OneOfMerge(prev.Schema, media.Schema)
		}
		existing[mt] = media
	}
	return existing
}
