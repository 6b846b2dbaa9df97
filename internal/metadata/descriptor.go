// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package metadata provides typed handler descriptors and the documentation
// attached to them.
package metadata

import (
	"fmt"

	"github.com/api2spec/routedoc/pkg/types"
)

// Parameter locations. LocationBody and LocationPart contribute to the
// request body; the rest become OpenAPI parameters.
const (
	LocationPath   = "path"
	LocationQuery  = "query"
	LocationHeader = "header"
	LocationCookie = "cookie"
	LocationBody   = "body"
	LocationPart   = "part"
)

// Mapping is a request mapping declared on a controller or a handler.
type Mapping struct {
	Methods  []string `yaml:"methods,omitempty"`
	Paths    []string `yaml:"paths,omitempty"`
	Consumes []string `yaml:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty"`
}

// Controller is a type owning a group of handlers.
type Controller struct {
	// Name is the type name, e.g. "WidgetController"
	Name string `yaml:"name"`

	Hidden bool `yaml:"hidden,omitempty"`

	// Advice marks an exception-handling type whose responses apply to every operation
	Advice bool `yaml:"advice,omitempty"`

	Mapping        `yaml:",inline"`
	Tags           []TagDoc   `yaml:"tags,omitempty"`
	ResponseStatus int        `yaml:"responseStatus,omitempty"`
	Handlers       []*Handler `yaml:"handlers,omitempty"`
}

// Handler is one handler method.
type Handler struct {
	// ID is unique within a registry; assigned on registration when empty
	ID string `yaml:"id,omitempty"`

	// Name is the method name
	Name string `yaml:"name"`

	Mapping `yaml:",inline"`

	Params []Param `yaml:"params,omitempty"`

	// Returns is the declared return type, e.g. "ResponseEntity<Widget>"
	Returns string `yaml:"returns,omitempty"`

	ResponseStatus int `yaml:"responseStatus,omitempty"`

	Hidden      bool            `yaml:"hidden,omitempty"`
	Operation   *OperationDoc   `yaml:"operation,omitempty"`
	RequestBody *RequestBodyDoc `yaml:"requestBody,omitempty"`
	Responses   []ResponseDoc   `yaml:"responses,omitempty"`
	Callbacks   []CallbackDoc   `yaml:"callbacks,omitempty"`
	Tags        []TagDoc        `yaml:"tags,omitempty"`

	// JSONView is the view applied to the handler's response
	JSONView string `yaml:"jsonView,omitempty"`

	Owner *Controller `yaml:"-"`
}

// Methods returns the verbs the handler answers to: its own, else its
// owner's, else the default set.
func (h *Handler) Methods() ([]types.HTTPMethod, error) {
	declared := h.Mapping.Methods
	if len(declared) == 0 && h.Owner != nil {
		declared = h.Owner.Mapping.Methods
	}
	if len(declared) == 0 {
		return append([]types.HTTPMethod(nil), types.DefaultMethods...), nil
	}

	seen := make(map[types.HTTPMethod]bool)
	methods := make([]types.HTTPMethod, 0, len(declared))
	for _, d := range declared {
		m, err := types.ParseMethod(d)
		if err != nil {
			return nil, fmt.Errorf("handler %s: %w", h.ID, err)
		}
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}
	return methods, nil
}

// Param is one parameter of a handler signature.
type Param struct {
	Name string `yaml:"name"`

	// In is one of the Location constants
	In string `yaml:"in"`

	// Type is the declared type, e.g. "String" or "List<Long>"
	Type string `yaml:"type"`

	Required    bool   `yaml:"required,omitempty"`
	Description string `yaml:"description,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty"`

	// JSONView is the view declared on the parameter
	JSONView string `yaml:"jsonView,omitempty"`

	// RequestBody is request-body documentation declared on the parameter itself
	RequestBody *RequestBodyDoc `yaml:"requestBody,omitempty"`
}

// IsBody reports whether the parameter contributes to the request body.
func (p Param) IsBody() bool {
	return p.In == LocationBody || p.In == LocationPart
}

// OperationDoc is operation-level documentation.
type OperationDoc struct {
	Summary        string          `yaml:"summary,omitempty"`
	Description    string          `yaml:"description,omitempty"`
	OperationID    string          `yaml:"operationId,omitempty"`
	Tags           []string        `yaml:"tags,omitempty"`
	Deprecated     bool            `yaml:"deprecated,omitempty"`
	Hidden         bool            `yaml:"hidden,omitempty"`
	IgnoreJSONView bool            `yaml:"ignoreJsonView,omitempty"`
	Parameters     []ParameterDoc  `yaml:"parameters,omitempty"`
	Responses      []ResponseDoc   `yaml:"responses,omitempty"`
	RequestBody    *RequestBodyDoc `yaml:"requestBody,omitempty"`
	Security       []string        `yaml:"security,omitempty"`
}

// ParameterDoc documents a parameter independently of the signature.
type ParameterDoc struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty"`
	Example     string `yaml:"example,omitempty"`
}

// ContentDoc binds a media type to a declared schema type.
type ContentDoc struct {
	MediaType string `yaml:"mediaType"`
	Type      string `yaml:"type,omitempty"`
}

// RequestBodyDoc documents a request body explicitly.
type RequestBodyDoc struct {
	Description string       `yaml:"description,omitempty"`
	Required    *bool        `yaml:"required,omitempty"`
	Content     []ContentDoc `yaml:"content,omitempty"`
}

// ResponseDoc documents one response.
type ResponseDoc struct {
	// Status is an HTTP status code or "default"
	Status      string       `yaml:"status"`
	Description string       `yaml:"description,omitempty"`
	Content     []ContentDoc `yaml:"content,omitempty"`
}

// CallbackDoc declares a callback. When several declarations share a name,
// the later one replaces the earlier one entirely.
type CallbackDoc struct {
	Name string `yaml:"name"`

	// Expression is the runtime URL expression, e.g. "http://$request.query.url"
	Expression string `yaml:"expression,omitempty"`

	// Ref points to a component callback and replaces inline operations
	Ref string `yaml:"ref,omitempty"`

	Operations []CallbackOperationDoc `yaml:"operations,omitempty"`
}

// CallbackOperationDoc is a mini-operation within a callback.
type CallbackOperationDoc struct {
	Method       string          `yaml:"method"`
	OperationDoc `yaml:",inline"`
}

// TagDoc declares a tag with an optional description.
type TagDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Field is a property of a model.
type Field struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Format      string      `yaml:"format,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Required    bool        `yaml:"required,omitempty"`
	Example     interface{} `yaml:"example,omitempty"`

	// Views restricts the field to these JSON views; empty means every view
	Views []string `yaml:"views,omitempty"`
}

// InView reports whether the field is visible under view. An empty view
// shows every field.
func (f Field) InView(view string) bool {
	if view == "" || len(f.Views) == 0 {
		return true
	}
	for _, v := range f.Views {
		if v == view {
			return true
		}
	}
	return false
}

// Model is a named data type referenced by handler signatures. Generic
// models name their type parameters and use them as field types.
type Model struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	TypeParams  []string `yaml:"typeParams,omitempty"`
	Fields      []Field  `yaml:"fields,omitempty"`
}
