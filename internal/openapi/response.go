// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"net/http"
	"strconv"

	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

const (
	defaultStatus       = "200"
	defaultAdviceStatus = "500"
	defaultDescription  = "default response"
)

// ResponseBuilder resolves operation responses.
type ResponseBuilder struct {
	extractor metadata.Extractor
	resolver  *schema.Resolver
	generic   map[string]types.Response
}

// NewResponseBuilder creates a response builder.
func NewResponseBuilder(extractor metadata.Extractor, resolver *schema.Resolver) *ResponseBuilder {
	return &ResponseBuilder{extractor: extractor, resolver: resolver}
}

// BuildGenericResponses computes the responses every operation inherits
// from controller-advice handlers. It runs once per pass, before any path
// is merged.
func (b *ResponseBuilder) BuildGenericResponses(advice []*metadata.Controller, defaultProduces string) {
	b.generic = make(map[string]types.Response)
	for _, c := range advice {
		if b.extractor.ControllerHidden(c) {
			continue
		}
		for _, h := range c.Handlers {
			if b.extractor.Hidden(h) {
				continue
			}
			attrs := NewMethodAttributes("", defaultProduces)
			attrs.CalculateConsumesProduces(h)
			attrs.JSONView = b.extractor.JSONView(h)
			b.build(h, b.generic, attrs, defaultAdviceStatus, true)
		}
	}
}

// Generic returns a copy of the generic responses.
func (b *ResponseBuilder) Generic() map[string]types.Response {
	out := make(map[string]types.Response, len(b.generic))
	for status, r := range b.generic {
		out[status] = r.Clone()
	}
	return out
}

// Build returns the responses of op: the generic ones, then those already on
// the operation, then the handler's own.
func (b *ResponseBuilder) Build(h *metadata.Handler, op *types.Operation, attrs *MethodAttributes) map[string]types.Response {
	responses := b.Generic()
	for status, r := range op.Responses {
		if prev, ok := responses[status]; ok {
			r = mergeResponse(prev, r)
		}
		responses[status] = r
	}
	b.build(h, responses, attrs, defaultStatus, false)
	return responses
}

// build adds the responses of h. A documented response without content
// takes the return type when it is a success, or always for advice.
func (b *ResponseBuilder) build(h *metadata.Handler, responses map[string]types.Response, attrs *MethodAttributes, fallbackStatus string, advice bool) {
	returns := b.returnSchema(h, attrs.JSONView)

	docs := b.extractor.Responses(h)
	for _, doc := range docs {
		r := types.Response{Description: doc.Description}
		switch {
		case len(doc.Content) > 0:
			r.Content = make(map[string]types.MediaType)
			for _, c := range doc.Content {
				s := b.schemaOf(c.Type, attrs.JSONView)
				for _, mt := range mediaTypesFor(c.MediaType, attrs.MethodProduces) {
					r.Content[mt] = types.MediaType{Schema: s.Clone()}
				}
			}
		case (advice || isSuccess(doc.Status)) && returns != nil:
			r.Content = contentFor(returns, attrs.MethodProduces)
		}
		if prev, ok := responses[doc.Status]; ok {
			r = mergeResponse(prev, r)
		}
		responses[doc.Status] = withDescription(doc.Status, r)
	}
	if len(docs) > 0 {
		return
	}

	status := fallbackStatus
	if code := b.extractor.ResponseStatus(h); code != 0 {
		status = strconv.Itoa(code)
	}
	r := types.Response{}
	if returns != nil {
		r.Content = contentFor(returns, attrs.MethodProduces)
	}
	if prev, ok := responses[status]; ok {
		r = mergeResponse(prev, r)
	}
	responses[status] = withDescription(status, r)
}

func (b *ResponseBuilder) returnSchema(h *metadata.Handler, view string) *types.Schema {
	if h.Returns == "" {
		return nil
	}
	t, err := types.ParseTypeRef(h.Returns)
	if err != nil || schema.IsVoid(t) {
		return nil
	}
	return b.resolver.SchemaFor(t, view)
}

func (b *ResponseBuilder) schemaOf(declared, view string) *types.Schema {
	if declared == "" {
		return nil
	}
	t, err := types.ParseTypeRef(declared)
	if err != nil {
		return nil
	}
	return b.resolver.SchemaFor(t, view)
}

func contentFor(s *types.Schema, produces []string) map[string]types.MediaType {
	content := make(map[string]types.MediaType)
	for _, mt := range mediaTypesFor("", produces) {
		content[mt] = types.MediaType{Schema: s.Clone()}
	}
	return content
}

// mergeResponse folds next into prev. A set description wins and differing
// schemas for the same media type become a oneOf.
func mergeResponse(prev, next types.Response) types.Response {
	out := prev.Clone()
	if next.Description != "" {
		out.Description = next.Description
	}
	out.Content = mergeContent(out.Content, next.Content)
	for name, h := range next.Headers {
		if out.Headers == nil {
			out.Headers = make(map[string]types.Header)
		}
		out.Headers[name] = h
	}
	return out
}

func withDescription(status string, r types.Response) types.Response {
	if r.Description == "" {
		r.Description = reasonPhrase(status)
	}
	return r
}

// reasonPhrase returns the HTTP reason phrase of status, or the generic
// description when there is none.
func reasonPhrase(status string) string {
	code, err := strconv.Atoi(status)
	if err != nil {
		return defaultDescription
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return defaultDescription
}

func isSuccess(status string) bool {
	code, err := strconv.Atoi(status)
	return err == nil && code >= 200 && code < 300
}
