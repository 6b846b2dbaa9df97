// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the OpenAPI document model produced by routedoc.
package types

// OpenAPI represents a complete OpenAPI 3.0/3.1 document.
type OpenAPI struct {
	// OpenAPI is the OpenAPI specification version (e.g., "3.0.1", "3.1.0")
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Servers is a list of server objects
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// Paths holds the available paths and operations
	Paths map[string]*PathItem `json:"paths" yaml:"paths"`

	// Components holds reusable objects
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`

	// Security is a list of security requirements
	Security []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`

	// Tags is a list of tags used by the document
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// NewDocument returns an empty document with initialized paths and components.
func NewDocument(version string) *OpenAPI {
	return &OpenAPI{
		OpenAPI:    version,
		Paths:      make(map[string]*PathItem),
		Components: &Components{Schemas: make(map[string]*Schema)},
	}
}

// HasTag reports whether the document-level tag list contains name.
func (o *OpenAPI) HasTag(name string) bool {
	for _, t := range o.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Info provides metadata about the API.
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version        string   `json:"version" yaml:"version"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem represents an API path. It holds at most one operation per verb;
// use Operation and SetOperation rather than the verb fields when the verb
// is only known at runtime.
type PathItem struct {
	// Ref is a reference to another path item
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`

	// Parameters are parameters for all operations on this path
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Operation represents an API operation.
type Operation struct {
	Tags         []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary      string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`

	// OperationID is unique across the document
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	Parameters  []Parameter  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`

	// Responses is required by OpenAPI and may be empty
	Responses map[string]Response `json:"responses" yaml:"responses"`

	// Callbacks maps callback names to callback objects
	Callbacks map[string]*Callback `json:"callbacks,omitempty" yaml:"callbacks,omitempty"`

	Deprecated bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security   []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`
	Servers    []Server              `json:"servers,omitempty" yaml:"servers,omitempty"`
}

// NewOperation returns an operation with an initialized response map.
func NewOperation() *Operation {
	return &Operation{Responses: make(map[string]Response)}
}

// HasTag reports whether the operation is tagged with name.
func (o *Operation) HasTag(name string) bool {
	for _, t := range o.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Components holds reusable objects.
type Components struct {
	Schemas         map[string]*Schema        `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Responses       map[string]Response       `json:"responses,omitempty" yaml:"responses,omitempty"`
	Parameters      map[string]Parameter      `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBodies   map[string]RequestBody    `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
	Callbacks       map[string]*Callback      `json:"callbacks,omitempty" yaml:"callbacks,omitempty"`
}

// SecurityScheme represents a security scheme.
type SecurityScheme struct {
	// Type is one of apiKey, http, oauth2, openIdConnect
	Type string `json:"type" yaml:"type"`

	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	In           string `json:"in,omitempty" yaml:"in,omitempty"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
}

// Tag represents a tag object.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}
