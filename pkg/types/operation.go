// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Parameter represents an OpenAPI parameter.
type Parameter struct {
	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// In is the location of the parameter (path, query, header, cookie)
	In string `json:"in" yaml:"in"`

	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated  bool        `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Schema      *Schema     `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example     interface{} `json:"example,omitempty" yaml:"example,omitempty"`
}

// RequestBody represents an OpenAPI request body.
type RequestBody struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response represents an OpenAPI response.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Headers     map[string]Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Clone returns a copy of the response whose content schemas can be
// modified without touching the original.
func (r Response) Clone() Response {
	c := r
	if r.Headers != nil {
		c.Headers = make(map[string]Header, len(r.Headers))
		for k, v := range r.Headers {
			v.Schema = v.Schema.Clone()
			c.Headers[k] = v
		}
	}
	c.Content = cloneContent(r.Content)
	return c
}

// Header represents an OpenAPI header.
type Header struct {
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// MediaType represents an OpenAPI media type.
type MediaType struct {
	Schema   *Schema            `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example  interface{}        `json:"example,omitempty" yaml:"example,omitempty"`
	Examples map[string]Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example represents an OpenAPI example.
type Example struct {
	Summary       string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	Value         interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	ExternalValue string      `json:"externalValue,omitempty" yaml:"externalValue,omitempty"`
}

func cloneContent(in map[string]MediaType) map[string]MediaType {
	if in == nil {
		return nil
	}
	out := make(map[string]MediaType, len(in))
	for k, v := range in {
		v.Schema = v.Schema.Clone()
		out[k] = v
	}
	return out
}

// Callback is either a reference to a component callback or a map of
// runtime URL expressions to path items.
type Callback struct {
	Ref         string
	Expressions map[string]*PathItem
}

type callbackRef struct {
	Ref string `json:"$ref" yaml:"$ref"`
}

// MarshalJSON writes the reference form when Ref is set.
func (c Callback) MarshalJSON() ([]byte, error) {
	if c.Ref != "" {
		return json.Marshal(callbackRef{Ref: c.Ref})
	}
	return json.Marshal(c.Expressions)
}

// UnmarshalJSON reads either form.
func (c *Callback) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if ref, ok := raw["$ref"]; ok {
		return json.Unmarshal(ref, &c.Ref)
	}
	return json.Unmarshal(data, &c.Expressions)
}

// MarshalYAML writes the reference form when Ref is set.
func (c Callback) MarshalYAML() (interface{}, error) {
	if c.Ref != "" {
		return callbackRef{Ref: c.Ref}, nil
	}
	return c.Expressions, nil
}

// UnmarshalYAML reads either form.
func (c *Callback) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "$ref" {
				c.Ref = node.Content[i+1].Value
				return nil
			}
		}
	}
	return node.Decode(&c.Expressions)
}
