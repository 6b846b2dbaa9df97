// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/api2spec/routedoc/internal/metadata"
)

func TestMethodAttributes_ConsumesProduces(t *testing.T) {
	tests := []struct {
		name         string
		class        metadata.Mapping
		method       metadata.Mapping
		wantConsumes []string
		wantProduces []string
	}{
		{
			name:         "defaults",
			wantConsumes: []string{"application/json"},
			wantProduces: []string{"*/*"},
		},
		{
			name:         "class level",
			class:        metadata.Mapping{Consumes: []string{"application/xml"}, Produces: []string{"text/plain"}},
			wantConsumes: []string{"application/xml"},
			wantProduces: []string{"text/plain"},
		},
		{
			name:         "method overrides class",
			class:        metadata.Mapping{Consumes: []string{"application/xml"}, Produces: []string{"text/plain"}},
			method:       metadata.Mapping{Produces: []string{"application/json", "application/json"}},
			wantConsumes: []string{"application/xml"},
			wantProduces: []string{"application/json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &metadata.Handler{Name: "h", Mapping: tt.method}
			c := controller("C", h)
			c.Mapping = tt.class

			attrs := NewMethodAttributes("application/json", "*/*")
			attrs.CalculateConsumesProduces(h)

			assert.Equal(t, tt.wantConsumes, attrs.MethodConsumes)
			assert.Equal(t, tt.wantProduces, attrs.MethodProduces)
		})
	}
}

func TestMethodAttributes_AllConsumes(t *testing.T) {
	h := &metadata.Handler{Name: "h", Mapping: metadata.Mapping{Consumes: []string{MediaTypeMultipart}}}
	c := controller("C", h)
	c.Consumes = []string{"application/json"}

	attrs := NewMethodAttributes("", "")
	attrs.CalculateConsumesProduces(h)

	assert.Equal(t, []string{MediaTypeMultipart, "application/json"}, attrs.AllConsumes())
	assert.True(t, attrs.HasMultipart())
}

func TestMethodAttributes_ResolveJSONViews(t *testing.T) {
	withDoc := func(name, view string) metadata.Param {
		return metadata.Param{Name: name, In: metadata.LocationBody, JSONView: view, RequestBody: &metadata.RequestBodyDoc{}}
	}

	tests := []struct {
		name         string
		methodView   string
		params       []metadata.Param
		ignore       bool
		wantResponse string
		wantRequest  string
	}{
		{
			name:         "method view only",
			methodView:   "Summary",
			wantResponse: "Summary",
			wantRequest:  "Summary",
		},
		{
			name:         "single documented parameter view wins",
			methodView:   "Summary",
			params:       []metadata.Param{withDoc("a", "Detail")},
			wantResponse: "Summary",
			wantRequest:  "Detail",
		},
		{
			name:       "view without request body documentation is ignored",
			methodView: "Summary",
			params: []metadata.Param{
				{Name: "a", In: metadata.LocationBody, JSONView: "Detail"},
			},
			wantResponse: "Summary",
			wantRequest:  "Summary",
		},
		{
			name:         "conflicting views give none",
			methodView:   "Summary",
			params:       []metadata.Param{withDoc("a", "Detail"), withDoc("b", "Other")},
			wantResponse: "Summary",
		},
		{
			name:       "ignore clears both",
			methodView: "Summary",
			params:     []metadata.Param{withDoc("a", "Detail")},
			ignore:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := NewMethodAttributes("", "")
			attrs.ResolveJSONViews(tt.methodView, tt.params, tt.ignore)

			assert.Equal(t, tt.wantResponse, attrs.JSONView)
			assert.Equal(t, tt.wantRequest, attrs.RequestBodyJSONView)
		})
	}
}
