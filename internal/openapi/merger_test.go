// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/pkg/types"
)

func TestMergeRoute_OverloadKeepsEarlierFields(t *testing.T) {
	f := newFixture(testConfig())

	a := &metadata.Handler{
		Name:      "listA",
		Mapping:   mapping("GET"),
		Returns:   "Widget",
		Operation: &metadata.OperationDoc{Summary: "A"},
	}
	b := &metadata.Handler{
		Name:    "listB",
		Mapping: mapping("GET"),
		Returns: "Widget",
		Tags:    []metadata.TagDoc{{Name: "x"}},
	}
	controller("AController", a, b)

	f.merge("/w", a)
	f.merge("/w", b)

	op := f.doc.Paths["/w"].Get
	require.NotNil(t, op)
	assert.Equal(t, "A", op.Summary)
	assert.Equal(t, []string{"x"}, op.Tags)
	assert.Equal(t, "listA", op.OperationID)
	assert.Equal(t, types.RefSchema("Widget"), op.Responses["200"].Content["*/*"].Schema)
}

func TestMergeRoute_OverloadLaterSetFieldsWin(t *testing.T) {
	f := newFixture(testConfig())

	a := &metadata.Handler{
		Name:      "first",
		Mapping:   mapping("GET"),
		Operation: &metadata.OperationDoc{Summary: "first", Description: "kept"},
	}
	b := &metadata.Handler{
		Name:      "second",
		Mapping:   mapping("GET"),
		Operation: &metadata.OperationDoc{Summary: "second", Deprecated: true},
	}
	controller("ThingController", a, b)

	f.merge("/things", a)
	f.merge("/things", b)

	op := f.doc.Paths["/things"].Get
	assert.Equal(t, "second", op.Summary)
	assert.Equal(t, "kept", op.Description)
	assert.True(t, op.Deprecated)
	assert.Equal(t, []string{"thing-controller"}, op.Tags)
}

func TestMergeRoute_OverloadDifferentReturnsBecomeOneOf(t *testing.T) {
	f := newFixture(testConfig())

	a := &metadata.Handler{Name: "widget", Mapping: mapping("GET"), Returns: "Widget"}
	b := &metadata.Handler{Name: "gadget", Mapping: mapping("GET"), Returns: "Gadget"}
	controller("MixedController", a, b)

	f.merge("/items", a)
	f.merge("/items", b)

	s := f.doc.Paths["/items"].Get.Responses["200"].Content["*/*"].Schema
	require.NotNil(t, s)
	assert.Equal(t, []*types.Schema{types.RefSchema("Widget"), types.RefSchema("Gadget")}, s.OneOf)
}

func TestMergeRoute_SingleRouteHasNoOneOf(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "save",
		Mapping: mapping("POST"),
		Params:  []metadata.Param{{Name: "widget", In: metadata.LocationBody, Type: "Widget"}},
		Returns: "Widget",
	}
	controller("SingleController", h)
	f.merge("/single", h)

	op := f.doc.Paths["/single"].Post
	assert.Equal(t, types.RefSchema("Widget"), op.Responses["200"].Content["*/*"].Schema)
	for _, media := range op.RequestBody.Content {
		assert.Empty(t, media.Schema.OneOf)
	}
}

func TestMergeRoute_VerbIsolation(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "save",
		Mapping: mapping("GET", "PUT"),
		Params:  []metadata.Param{{Name: "widget", In: metadata.LocationBody, Type: "Widget"}},
		Returns: "Widget",
	}
	other := &metadata.Handler{
		Name:      "replace",
		Mapping:   mapping("PUT"),
		Operation: &metadata.OperationDoc{Summary: "replace"},
	}
	controller("WidgetController", h, other)

	f.merge("/widgets", h)
	item := f.doc.Paths["/widgets"]
	getBefore := *item.Get

	f.merge("/widgets", other)

	require.NotNil(t, item.Get)
	require.NotNil(t, item.Put)
	assert.NotSame(t, item.Get, item.Put)
	assert.Nil(t, item.Get.RequestBody)
	assert.NotNil(t, item.Put.RequestBody)
	assert.Equal(t, "replace", item.Put.Summary)
	assert.Empty(t, item.Get.Summary)
	assert.Equal(t, getBefore.OperationID, item.Get.OperationID)
	assert.Equal(t, getBefore.Tags, item.Get.Tags)
}

func TestMergeRoute_HiddenExclusion(t *testing.T) {
	f := newFixture(testConfig())

	visible := &metadata.Handler{Name: "list", Mapping: mapping("GET"), Returns: "Widget"}
	hiddenMethod := &metadata.Handler{Name: "drop", Mapping: mapping("POST"), Returns: "Gadget", Hidden: true}
	hiddenDoc := &metadata.Handler{
		Name:      "purge",
		Mapping:   mapping("DELETE"),
		Returns:   "ErrorBody",
		Operation: &metadata.OperationDoc{Hidden: true},
	}
	controller("WidgetController", visible, hiddenMethod, hiddenDoc)

	f.merge("/widgets", visible)
	f.merge("/widgets", hiddenMethod)
	f.merge("/widgets", hiddenDoc)

	item := f.doc.Paths["/widgets"]
	assert.NotNil(t, item.Get)
	assert.Nil(t, item.Post)
	assert.Nil(t, item.Delete)

	schemas := f.components()
	assert.Contains(t, schemas, "Widget")
	assert.NotContains(t, schemas, "Gadget")
	assert.NotContains(t, schemas, "ErrorBody")
}

func TestMergeRoutes_HiddenController(t *testing.T) {
	f := newFixture(testConfig())

	routes := metadata.NewRouteMap()
	hidden := controller("SecretController",
		&metadata.Handler{Name: "secret", Mapping: metadata.Mapping{Methods: []string{"GET"}, Paths: []string{"/secret"}}, Returns: "Gadget"},
	)
	hidden.Hidden = true
	for _, h := range hidden.Handlers {
		require.NoError(t, routes.Add(h))
	}

	require.NoError(t, f.merger.MergeRoutes(routes))

	assert.Empty(t, f.doc.Paths)
	assert.Empty(t, f.components())
	assert.Equal(t, 0, f.merger.Merged())
}

func TestMergeRoutes_DefaultVerbsAndUniqueIDs(t *testing.T) {
	f := newFixture(testConfig())

	routes := metadata.NewRouteMap()
	c := controller("WidgetController",
		&metadata.Handler{Name: "find", Mapping: metadata.Mapping{Paths: []string{"/w/{id:[0-9]+}"}}},
	)
	c.Paths = []string{"/api"}
	require.NoError(t, routes.Add(c.Handlers[0]))

	require.NoError(t, f.merger.MergeRoutes(routes))

	item, ok := f.doc.Paths["/api/w/{id}"]
	require.True(t, ok)
	ops := item.Operations()
	assert.Len(t, ops, len(types.DefaultMethods))
	assert.Nil(t, item.Trace)

	assert.Equal(t, "find", item.Get.OperationID)
	assert.Equal(t, "find_1", item.Post.OperationID)
	assert.Equal(t, "find_2", item.Put.OperationID)

	ids := make(map[string]bool)
	for _, op := range ops {
		assert.False(t, ids[op.OperationID], "duplicate operationId %s", op.OperationID)
		ids[op.OperationID] = true
	}
	assert.Equal(t, len(types.DefaultMethods), f.merger.Merged())
}

func TestMergeRoutes_PathFilter(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.PathsToMatch = []string{"/api/**"}
	cfg.Generation.PathsToExclude = []string{"/api/internal/**"}
	f := newFixture(cfg)

	routes := metadata.NewRouteMap()
	c := controller("MixedController",
		&metadata.Handler{Name: "public", Mapping: metadata.Mapping{Methods: []string{"GET"}, Paths: []string{"/api/public"}}},
		&metadata.Handler{Name: "internal", Mapping: metadata.Mapping{Methods: []string{"GET"}, Paths: []string{"/api/internal/stats"}}},
		&metadata.Handler{Name: "other", Mapping: metadata.Mapping{Methods: []string{"GET"}, Paths: []string{"/health"}}},
		&metadata.Handler{Name: "relative", Mapping: metadata.Mapping{Methods: []string{"GET"}, Paths: []string{"relative"}}},
	)
	for _, h := range c.Handlers {
		require.NoError(t, routes.Add(h))
	}

	require.NoError(t, f.merger.MergeRoutes(routes))

	assert.Equal(t, []string{"/api/public"}, SortedPaths(f.doc.Paths))
}

func TestMergeRoutes_InvalidVerb(t *testing.T) {
	f := newFixture(testConfig())

	routes := metadata.NewRouteMap()
	c := controller("BadController",
		&metadata.Handler{Name: "bad", Mapping: metadata.Mapping{Methods: []string{"FETCH"}, Paths: []string{"/bad"}}},
	)
	require.NoError(t, routes.Add(c.Handlers[0]))

	err := f.merger.MergeRoutes(routes)
	assert.Error(t, err)
}

func TestMergeRoute_JSONViews(t *testing.T) {
	f := newFixture(testConfig())

	viewed := &metadata.Handler{Name: "public", Mapping: mapping("GET"), Returns: "Widget", JSONView: "Public"}
	ignored := &metadata.Handler{
		Name:      "ignored",
		Mapping:   mapping("GET"),
		Returns:   "Widget",
		JSONView:  "Public",
		Operation: &metadata.OperationDoc{IgnoreJSONView: true},
	}
	controller("ViewController", viewed, ignored)

	f.merge("/public", viewed)
	f.merge("/ignored", ignored)

	assert.Equal(t, types.RefSchema("Widget_Public"),
		f.doc.Paths["/public"].Get.Responses["200"].Content["*/*"].Schema)
	assert.Equal(t, types.RefSchema("Widget"),
		f.doc.Paths["/ignored"].Get.Responses["200"].Content["*/*"].Schema)

	schemas := f.components()
	assert.NotContains(t, schemas["Widget_Public"].Properties, "secret")
	assert.Contains(t, schemas["Widget_Public"].Properties, "name")
	assert.Contains(t, schemas["Widget"].Properties, "secret")
}

func TestMergeRoute_ReactiveUnwrapDepthTwo(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.Flavor = "reactive"
	f := newFixture(cfg)

	wrapped := &metadata.Handler{Name: "wrapped", Mapping: mapping("GET"), Returns: "Mono<ResponseEntity<Widget>>"}
	stream := &metadata.Handler{Name: "stream", Mapping: mapping("GET"), Returns: "Flux<Widget>"}
	plain := &metadata.Handler{Name: "plain", Mapping: mapping("GET"), Returns: "Widget"}
	entity := &metadata.Handler{Name: "entity", Mapping: mapping("GET"), Returns: "ResponseEntity<Widget>"}
	controller("ReactiveController", wrapped, stream, plain, entity)

	f.merge("/wrapped", wrapped)
	f.merge("/stream", stream)
	f.merge("/plain", plain)
	f.merge("/entity", entity)

	want := f.doc.Paths["/plain"].Get.Responses["200"].Content["*/*"].Schema
	assert.Equal(t, types.RefSchema("Widget"), want)
	assert.Equal(t, want, f.doc.Paths["/wrapped"].Get.Responses["200"].Content["*/*"].Schema)
	assert.Equal(t, want, f.doc.Paths["/stream"].Get.Responses["200"].Content["*/*"].Schema)
	assert.Equal(t, want, f.doc.Paths["/entity"].Get.Responses["200"].Content["*/*"].Schema)
	assert.Len(t, f.components(), 1)
}

func TestMergeRoute_Callbacks(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "subscribe",
		Mapping: mapping("POST"),
		Returns: "SubscriptionResponse",
		Params: []metadata.Param{
			{Name: "x-auth-token", In: metadata.LocationHeader, Type: "String", Description: "the authentication token"},
			{Name: "url", In: metadata.LocationQuery, Type: "String", Description: "the URL to call with each message"},
		},
		Callbacks: []metadata.CallbackDoc{{
			Name:       "subscription",
			Expression: "http://$request.query.url",
			Operations: []metadata.CallbackOperationDoc{{
				Method: "post",
				OperationDoc: metadata.OperationDoc{
					Description: "payload data will be sent",
					Parameters: []metadata.ParameterDoc{{
						Name:        "subscriptionId",
						In:          metadata.LocationPath,
						Type:        "UUID",
						Description: "subscription id",
					}},
					Responses: []metadata.ResponseDoc{
						{Status: "200", Description: "Return this code if the callback was received and processed successfully"},
						{Status: "205", Description: "Return this code to unsubscribe from future data updates"},
						{Status: "default", Description: "All other response codes will disable this callback subscription"},
					},
				},
			}},
		}},
	}
	controller("HelloController", h)

	f.merge("/test", h)

	op := f.doc.Paths["/test"].Post
	require.NotNil(t, op)
	assert.Len(t, op.Parameters, 2)
	assert.Equal(t, types.RefSchema("SubscriptionResponse"), op.Responses["200"].Content["*/*"].Schema)

	cb, ok := op.Callbacks["subscription"]
	require.True(t, ok)
	item := cb.Expressions["http://$request.query.url"]
	require.NotNil(t, item)
	post := item.Operation(types.MethodPost)
	require.NotNil(t, post)
	assert.Equal(t, "payload data will be sent", post.Description)

	require.Len(t, post.Parameters, 1)
	param := post.Parameters[0]
	assert.Equal(t, "subscriptionId", param.Name)
	assert.True(t, param.Required)
	assert.Equal(t, &types.Schema{Type: "string", Format: "uuid"}, param.Schema)

	assert.Len(t, post.Responses, 3)
	assert.Contains(t, post.Responses, "205")
	assert.Contains(t, post.Responses, "default")
}

func TestMergeRoute_CallbackLaterDeclarationWins(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "notify",
		Mapping: mapping("POST"),
		Callbacks: []metadata.CallbackDoc{
			{
				Name:       "events",
				Expression: "{$request.body#/callbackUrl}",
				Operations: []metadata.CallbackOperationDoc{{Method: "post"}},
			},
			{Name: "events", Ref: "sharedEvents"},
			{Name: "absolute", Ref: "#/components/callbacks/other"},
		},
	}
	controller("EventController", h)

	f.merge("/events", h)

	cbs := f.doc.Paths["/events"].Post.Callbacks
	require.Len(t, cbs, 2)
	assert.Equal(t, "#/components/callbacks/sharedEvents", cbs["events"].Ref)
	assert.Nil(t, cbs["events"].Expressions)
	assert.Equal(t, "#/components/callbacks/other", cbs["absolute"].Ref)
}

func TestMergeRoute_CallbackSameNameReplacesExpressions(t *testing.T) {
	f := newFixture(testConfig())

	h := &metadata.Handler{
		Name:    "watch",
		Mapping: mapping("POST"),
		Callbacks: []metadata.CallbackDoc{
			{
				Name:       "changes",
				Expression: "{$request.query.first}",
				Operations: []metadata.CallbackOperationDoc{{Method: "post"}},
			},
			{
				Name:       "changes",
				Expression: "{$request.query.second}",
				Operations: []metadata.CallbackOperationDoc{{Method: "put"}},
			},
		},
	}
	controller("WatchController", h)

	f.merge("/watch", h)

	cb := f.doc.Paths["/watch"].Post.Callbacks["changes"]
	require.NotNil(t, cb)
	require.Len(t, cb.Expressions, 1)
	item := cb.Expressions["{$request.query.second}"]
	require.NotNil(t, item)
	assert.NotNil(t, item.Put)
	assert.Nil(t, item.Post)
}
