// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/pkg/types"
)

func TestOperationBuilder_Parse(t *testing.T) {
	b := NewOperationBuilder(metadata.NewAnnotationExtractor(), nil)
	op := types.NewOperation()
	op.Summary = "earlier"
	op.Description = "earlier description"

	b.Parse(&metadata.OperationDoc{Summary: "  ", Description: "later", OperationID: "getWidget"}, op)

	assert.Equal(t, "earlier", op.Summary)
	assert.Equal(t, "later", op.Description)
	assert.Equal(t, "getWidget", op.OperationID)
	assert.False(t, op.Deprecated)

	b.Parse(nil, op)
	assert.Equal(t, "later", op.Description)
}

func TestOperationBuilder_UniqueIDs(t *testing.T) {
	b := NewOperationBuilder(metadata.NewAnnotationExtractor(), nil)
	h := &metadata.Handler{Name: "list"}

	first, second, third := types.NewOperation(), types.NewOperation(), types.NewOperation()
	b.EnsureOperationID(h, first)
	b.EnsureOperationID(h, second)
	b.EnsureOperationID(h, third)

	assert.Equal(t, "list", first.OperationID)
	assert.Equal(t, "list_1", second.OperationID)
	assert.Equal(t, "list_2", third.OperationID)

	// An operation keeps the id it already holds
	b.assignID(first, "list")
	assert.Equal(t, "list", first.OperationID)

	// Renaming frees the old id
	b.assignID(first, "index")
	assert.Equal(t, "index", first.OperationID)
	fourth := types.NewOperation()
	b.EnsureOperationID(h, fourth)
	assert.Equal(t, "list", fourth.OperationID)
}

func TestOperationBuilder_IsHidden(t *testing.T) {
	b := NewOperationBuilder(metadata.NewAnnotationExtractor(), nil)

	visible := &metadata.Handler{Name: "a"}
	hidden := &metadata.Handler{Name: "b", Hidden: true}
	controller("Visible", visible, hidden)

	inHidden := &metadata.Handler{Name: "c"}
	c := controller("Hidden", inHidden)
	c.Hidden = true

	assert.False(t, b.IsHidden(visible))
	assert.True(t, b.IsHidden(hidden))
	assert.True(t, b.IsHidden(inHidden))
}

func TestRequestBuilder_ParameterDocs(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "get",
		Mapping: mapping("GET"),
		Params: []metadata.Param{
			{Name: "id", In: metadata.LocationPath, Type: "Long"},
			{Name: "expand", In: metadata.LocationQuery, Type: "Boolean"},
			{Name: "trace", In: metadata.LocationHeader, Type: "String"},
			{Name: "internal", In: metadata.LocationQuery, Type: "String", Hidden: true},
		},
		Operation: &metadata.OperationDoc{
			Parameters: []metadata.ParameterDoc{
				{Name: "id", In: metadata.LocationPath, Description: "widget id", Example: "42"},
				{Name: "trace", In: metadata.LocationHeader, Hidden: true},
				{Name: "locale", In: metadata.LocationCookie, Deprecated: true},
			},
			Security: []string{"bearerAuth"},
		},
	}
	controller("WidgetController", h)

	f.merge("/widgets/{id}", h)

	op := f.doc.Paths["/widgets/{id}"].Get
	names := make([]string, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"id", "expand", "locale"}, names)

	id := op.Parameters[0]
	assert.True(t, id.Required)
	assert.Equal(t, "widget id", id.Description)
	assert.Equal(t, "42", id.Example)
	assert.Equal(t, &types.Schema{Type: "integer", Format: "int64"}, id.Schema)

	locale := op.Parameters[2]
	assert.True(t, locale.Deprecated)
	assert.Equal(t, &types.Schema{Type: "string"}, locale.Schema)

	assert.Equal(t, []map[string][]string{{"bearerAuth": {}}}, op.Security)
}

func TestMergeParameters(t *testing.T) {
	existing := []types.Parameter{
		{Name: "id", In: "path", Required: true, Description: "old", Schema: &types.Schema{Type: "string"}},
	}
	next := []types.Parameter{
		{Name: "id", In: "path", Schema: &types.Schema{Type: "integer"}},
		{Name: "id", In: "query"},
	}

	merged := mergeParameters(existing, next)

	assert.Len(t, merged, 2)
	assert.Equal(t, "old", merged[0].Description)
	assert.True(t, merged[0].Required)
	assert.Equal(t, "integer", merged[0].Schema.Type)
	assert.Equal(t, "query", merged[1].In)
}
