// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import "reflect"

// Schema represents an OpenAPI schema object.
type Schema struct {
	// Ref is a reference to a component schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (string, number, integer, boolean, array, object)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date-time, uuid, binary, etc.)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Default interface{}   `json:"default,omitempty" yaml:"default,omitempty"`
	Example interface{}   `json:"example,omitempty" yaml:"example,omitempty"`
	Enum    []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	Nullable   bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ReadOnly   bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly  bool `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// Items is the schema for array items
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Properties maps property names to their schemas
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties is the value schema of map-like objects
	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// ExternalDocs provides external documentation
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// ExternalDocs provides external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// NewObjectSchema returns an empty object schema with an initialized property map.
func NewObjectSchema() *Schema {
	return &Schema{Type: "object", Properties: make(map[string]*Schema)}
}

// RefSchema returns a schema referencing a component by name.
func RefSchema(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// IsFile reports whether the schema describes a binary upload.
func (s *Schema) IsFile() bool {
	if s == nil {
		return false
	}
	if s.Type == "string" && s.Format == "binary" {
		return true
	}
	return s.Type == "array" && s.Items.IsFile()
}

// AddProperty sets a property, marking it required when asked. Adding the
// same name twice keeps a single required entry.
func (s *Schema) AddProperty(name string, prop *Schema, required bool) {
	if s.Properties == nil {
		s.Properties = make(map[string]*Schema)
	}
	s.Properties[name] = prop
	if required {
		for _, r := range s.Required {
			if r == name {
				return
			}
		}
		s.Required = append(s.Required, name)
	}
}

// Equal reports whether two schemas are structurally identical.
func (s *Schema) Equal(other *Schema) bool {
	return reflect.DeepEqual(s, other)
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = s.Items.Clone()
	c.AdditionalProperties = s.AdditionalProperties.Clone()
	if s.Properties != nil {
		c.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			c.Properties[k] = v.Clone()
		}
	}
	c.Required = append([]string(nil), s.Required...)
	c.Enum = append([]interface{}(nil), s.Enum...)
	c.AllOf = cloneSchemas(s.AllOf)
	c.OneOf = cloneSchemas(s.OneOf)
	c.AnyOf = cloneSchemas(s.AnyOf)
	if s.ExternalDocs != nil {
		d := *s.ExternalDocs
		c.ExternalDocs = &d
	}
	return &c
}

func cloneSchemas(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// OneOfMerge combines an existing schema with a new one. Identical schemas
// are returned unchanged; otherwise the result is a oneOf of both, flattening
// an existing oneOf and skipping alternatives already present.
func OneOfMerge(existing, next *Schema) *Schema {
	switch {
	case existing == nil:
		return next
	case next == nil || existing.Equal(next):
		return existing
	}
	var alts []*Schema
	if len(existing.OneOf) > 0 && existing.Type == "" && existing.Ref == "" {
		alts = append(alts, existing.OneOf...)
	} else {
		alts = append(alts, existing)
	}
	for _, a := range alts {
		if a.Equal(next) {
			return &Schema{OneOf: alts}
		}
	}
	return &Schema{OneOf: append(alts, next)}
}
