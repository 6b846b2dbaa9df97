// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"strings"

	"github.com/api2spec/routedoc/internal/metadata"
)

// MediaTypeMultipart is the form upload media type.
const MediaTypeMultipart = "multipart/form-data"

// MethodAttributes carries the per-operation context resolved for one
// (path, verb) merge: media types, JSON views and whether an earlier route
// already produced the operation.
type MethodAttributes struct {
	ClassConsumes  []string
	ClassProduces  []string
	MethodConsumes []string
	MethodProduces []string

	defaultConsumes string
	defaultProduces string

	// JSONView filters response schemas
	JSONView string

	// RequestBodyJSONView filters request body schemas
	RequestBodyJSONView string

	// MethodOverloaded is set when the operation already existed. It is
	// informational: builders always merge into the operation's current
	// content, which is empty for a new operation.
	MethodOverloaded bool
}

// NewMethodAttributes creates attributes with the configured fallback media types.
func NewMethodAttributes(defaultConsumes, defaultProduces string) *MethodAttributes {
	return &MethodAttributes{
		defaultConsumes: defaultConsumes,
		defaultProduces: defaultProduces,
	}
}

// CalculateConsumesProduces resolves media types for h. Method-level
// declarations override the owner's, which override the defaults.
func (a *MethodAttributes) CalculateConsumesProduces(h *metadata.Handler) {
	if h.Owner != nil {
		a.ClassConsumes = clean(h.Owner.Consumes)
		a.ClassProduces = clean(h.Owner.Produces)
	}
	a.MethodConsumes = pick(clean(h.Consumes), a.ClassConsumes, a.defaultConsumes)
	a.MethodProduces = pick(clean(h.Produces), a.ClassProduces, a.defaultProduces)
}

// AllConsumes returns the method and class consumes together.
func (a *MethodAttributes) AllConsumes() []string {
	out := append([]string(nil), a.MethodConsumes...)
	for _, c := range a.ClassConsumes {
		if !containsString(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// HasMultipart reports whether any consumed media type is a form upload.
func (a *MethodAttributes) HasMultipart() bool {
	for _, c := range a.AllConsumes() {
		if strings.EqualFold(c, MediaTypeMultipart) {
			return true
		}
	}
	return false
}

// ResolveJSONViews sets the response and request-body views. The request
// body takes the single view declared on a parameter that carries request
// body documentation; with none it falls back to the method view, and with
// several conflicting ones it gets no view.
func (a *MethodAttributes) ResolveJSONViews(methodView string, params []metadata.Param, ignore bool) {
	if ignore {
		a.JSONView, a.RequestBodyJSONView = "", ""
		return
	}
	a.JSONView = methodView

	var views []string
	for _, p := range params {
		if p.RequestBody != nil && p.JSONView != "" {
			views = append(views, p.JSONView)
		}
	}
	switch len(views) {
	case 0:
		a.RequestBodyJSONView = methodView
	case 1:
		a.RequestBodyJSONView = views[0]
	default:
		a.RequestBodyJSONView = ""
	}
}

func pick(method, class []string, fallback string) []string {
	switch {
	case len(method) > 0:
		return method
	case len(class) > 0:
		return append([]string(nil), class...)
	case fallback != "":
		return []string{fallback}
	}
	return nil
}

func clean(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !containsString(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
