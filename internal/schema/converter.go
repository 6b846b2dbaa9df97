// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/pkg/types"
)

// Converter turns a type that needs no unwrapping into a schema, registering
// named models in the registry and returning references to them. A nil
// schema means the type has no body representation (void).
type Converter interface {
	Convert(t types.TypeRef, view string, reg *Registry) *types.Schema
}

var primitives = map[string]types.Schema{
	"string":         {Type: "string"},
	"String":         {Type: "string"},
	"char":           {Type: "string"},
	"Character":      {Type: "string"},
	"CharSequence":   {Type: "string"},
	"int":            {Type: "integer", Format: "int32"},
	"Integer":        {Type: "integer", Format: "int32"},
	"short":          {Type: "integer", Format: "int32"},
	"Short":          {Type: "integer", Format: "int32"},
	"byte":           {Type: "string", Format: "byte"},
	"Byte":           {Type: "string", Format: "byte"},
	"long":           {Type: "integer", Format: "int64"},
	"Long":           {Type: "integer", Format: "int64"},
	"BigInteger":     {Type: "integer"},
	"float":          {Type: "number", Format: "float"},
	"Float":          {Type: "number", Format: "float"},
	"double":         {Type: "number", Format: "double"},
	"Double":         {Type: "number", Format: "double"},
	"BigDecimal":     {Type: "number"},
	"boolean":        {Type: "boolean"},
	"Boolean":        {Type: "boolean"},
	"UUID":           {Type: "string", Format: "uuid"},
	"URI":            {Type: "string", Format: "uri"},
	"URL":            {Type: "string", Format: "url"},
	"LocalDate":      {Type: "string", Format: "date"},
	"LocalDateTime":  {Type: "string", Format: "date-time"},
	"OffsetDateTime": {Type: "string", Format: "date-time"},
	"ZonedDateTime":  {Type: "string", Format: "date-time"},
	"Instant":        {Type: "string", Format: "date-time"},
	"Date":           {Type: "string", Format: "date-time"},
	"Object":         {Type: "object"},
	"MultipartFile":  {Type: "string", Format: "binary"},
	"FilePart":       {Type: "string", Format: "binary"},
	"File":           {Type: "string", Format: "binary"},
	"Resource":       {Type: "string", Format: "binary"},
}

var voidTypes = map[string]bool{"void": true, "Void": true}

var arrayTypes = map[string]bool{
	"List":       true,
	"Set":        true,
	"Collection": true,
	"Iterable":   true,
	"Array":      true,
}

var mapTypes = map[string]bool{"Map": true, "HashMap": true, "LinkedHashMap": true}

var optionalTypes = map[string]bool{"Optional": true}

// ModelConverter converts primitives, collections, and the models declared
// in route manifests.
type ModelConverter struct {
	models map[string]*metadata.Model
}

// NewModelConverter creates a converter over the given model definitions,
// keyed by model name.
func NewModelConverter(models map[string]*metadata.Model) *ModelConverter {
	return &ModelConverter{models: models}
}

// IsVoid reports whether t declares no value.
func IsVoid(t types.TypeRef) bool {
	return t.IsZero() || voidTypes[t.SimpleName()]
}

// Convert implements Converter.
func (c *ModelConverter) Convert(t types.TypeRef, view string, reg *Registry) *types.Schema {
	if IsVoid(t) {
		return nil
	}
	name := t.SimpleName()

	if p, ok := primitives[name]; ok && !t.IsGeneric() {
		s := p
		return &s
	}

	switch {
	case arrayTypes[name] && len(t.Args) == 1:
		items := c.Convert(t.Args[0], view, reg)
		if items == nil {
			items = &types.Schema{Type: "object"}
		}
		s := &types.Schema{Type: "array", Items: items}
		if name == "Set" {
			s.UniqueItems = true
		}
		return s
	case mapTypes[name] && len(t.Args) == 2:
		values := c.Convert(t.Args[1], view, reg)
		if values == nil {
			values = &types.Schema{Type: "object"}
		}
		return &types.Schema{Type: "object", AdditionalProperties: values}
	case optionalTypes[name] && len(t.Args) == 1:
		return c.Convert(t.Args[0], view, reg)
	}

	model, ok := c.lookup(t)
	if !ok {
		if t.IsGeneric() {
			return nil
		}
		return &types.Schema{Type: "object"}
	}
	if len(model.TypeParams) != len(t.Args) {
		return nil
	}
	return c.register(model, t, view, reg)
}

func (c *ModelConverter) lookup(t types.TypeRef) (*metadata.Model, bool) {
	if m, ok := c.models[t.Name]; ok {
		return m, true
	}
	m, ok := c.models[t.SimpleName()]
	return m, ok
}

// register converts a model into a component and returns a reference to it.
func (c *ModelConverter) register(model *metadata.Model, t types.TypeRef, view string, reg *Registry) *types.Schema {
	base := t.SchemaName()
	if view != "" {
		base += "_" + types.TypeRef{Name: view}.SimpleName()
	}
	canonical := types.TypeRef{Name: model.Name, Args: t.Args}
	name, created := reg.Reserve(Key{Type: canonical.String(), View: view}, base)
	if !created {
		return types.RefSchema(name)
	}

	bindings := make(map[string]types.TypeRef, len(model.TypeParams))
	for i, p := range model.TypeParams {
		bindings[p] = t.Args[i]
	}

	obj := types.NewObjectSchema()
	obj.Description = model.Description
	for _, f := range model.Fields {
		if !f.InView(view) {
			continue
		}
		ft, err := types.ParseTypeRef(f.Type)
		if err != nil {
			continue
		}
		prop := c.Convert(substitute(ft, bindings), view, reg)
		if prop == nil {
			continue
		}
		if prop.Ref == "" {
			if f.Format != "" {
				prop.Format = f.Format
			}
			if f.Description != "" {
				prop.Description = f.Description
			}
			if f.Example != nil {
				prop.Example = f.Example
			}
		}
		obj.AddProperty(f.Name, prop, f.Required)
	}
	reg.Put(name, obj)
	return types.RefSchema(name)
}

// substitute replaces type parameters with their bound arguments.
func substitute(t types.TypeRef, bindings map[string]types.TypeRef) types.TypeRef {
	if bound, ok := bindings[t.Name]; ok && !t.IsGeneric() {
		return bound
	}
	if !t.IsGeneric() {
		return t
	}
	out := types.TypeRef{Name: t.Name, Args: make([]types.TypeRef, len(t.Args))}
	for i, a := range t.Args {
		out.Args[i] = substitute(a, bindings)
	}
	return out
}
