// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"strings"

	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

const callbackRefPrefix = "#/components/callbacks/"

// OperationBuilder applies operation documentation and keeps operationIds
// unique across the document being built.
type OperationBuilder struct {
	extractor metadata.Extractor
	resolver  *schema.Resolver

	// ids maps each assigned operationId to the operation holding it
	ids map[string]*types.Operation
}

// NewOperationBuilder creates an operation builder for one pass.
func NewOperationBuilder(extractor metadata.Extractor, resolver *schema.Resolver) *OperationBuilder {
	return &OperationBuilder{
		extractor: extractor,
		resolver:  resolver,
		ids:       make(map[string]*types.Operation),
	}
}

// IsHidden reports whether the handler is excluded from the document.
func (b *OperationBuilder) IsHidden(h *metadata.Handler) bool {
	return b.extractor.Hidden(h) || b.extractor.ControllerHidden(h.Owner)
}

// Parse applies doc to op. Blank values leave op untouched so an
// overloaded operation keeps what an earlier route set.
func (b *OperationBuilder) Parse(doc *metadata.OperationDoc, op *types.Operation) {
	if doc == nil {
		return
	}
	if s := strings.TrimSpace(doc.Summary); s != "" {
		op.Summary = s
	}
	if d := strings.TrimSpace(doc.Description); d != "" {
		op.Description = d
	}
	if doc.Deprecated {
		op.Deprecated = true
	}
	if id := strings.TrimSpace(doc.OperationID); id != "" {
		b.assignID(op, id)
	}
}

// EnsureOperationID gives op the handler name as operationId when no
// documentation named it.
func (b *OperationBuilder) EnsureOperationID(h *metadata.Handler, op *types.Operation) {
	if op.OperationID == "" {
		b.assignID(op, h.Name)
	}
}

// assignID sets a document-unique operationId derived from candidate. An
// operation keeps an id it already holds.
func (b *OperationBuilder) assignID(op *types.Operation, candidate string) {
	if candidate == "" {
		return
	}
	id := candidate
	for n := 1; b.ids[id] != nil && b.ids[id] != op; n++ {
		id = fmt.Sprintf("%s_%d", candidate, n)
	}
	if op.OperationID != "" && op.OperationID != id && b.ids[op.OperationID] == op {
		delete(b.ids, op.OperationID)
	}
	b.ids[id] = op
	op.OperationID = id
}

// BuildCallbacks adds the handler's callbacks to op. A later declaration
// replaces an earlier one with the same name.
func (b *OperationBuilder) BuildCallbacks(h *metadata.Handler, op *types.Operation, attrs *MethodAttributes) {
	for _, doc := range b.extractor.Callbacks(h) {
		if doc.Name == "" {
			continue
		}
		cb := b.callback(doc, attrs)
		if cb == nil {
			continue
		}
		if op.Callbacks == nil {
			op.Callbacks = make(map[string]*types.Callback)
		}
		op.Callbacks[doc.Name] = cb
	}
}

func (b *OperationBuilder) callback(doc metadata.CallbackDoc, attrs *MethodAttributes) *types.Callback {
	if ref := strings.TrimSpace(doc.Ref); ref != "" {
		if !strings.HasPrefix(ref, "#") {
			ref = callbackRefPrefix + ref
		}
		return &types.Callback{Ref: ref}
	}
	if doc.Expression == "" {
		return nil
	}

	item := &types.PathItem{}
	for _, cop := range doc.Operations {
		verb, err := types.ParseMethod(cop.Method)
		if err != nil {
			continue
		}
		item.SetOperation(verb, b.callbackOperation(cop.OperationDoc, attrs))
	}
	return &types.Callback{Expressions: map[string]*types.PathItem{doc.Expression: item}}
}

// callbackOperation builds a mini-operation from documentation alone.
func (b *OperationBuilder) callbackOperation(doc metadata.OperationDoc, attrs *MethodAttributes) *types.Operation {
	op := types.NewOperation()
	op.Summary = strings.TrimSpace(doc.Summary)
	op.Description = strings.TrimSpace(doc.Description)
	op.OperationID = strings.TrimSpace(doc.OperationID)
	op.Deprecated = doc.Deprecated
	op.Tags = append([]string(nil), doc.Tags...)
	if len(doc.Security) > 0 {
		op.Security = securityRequirements(doc.Security)
	}

	for _, pd := range doc.Parameters {
		if pd.Hidden {
			continue
		}
		p := documentedParameter(b.resolver, pd)
		if p.Schema == nil {
			p.Schema = &types.Schema{Type: "string"}
		}
		op.Parameters = append(op.Parameters, p)
	}

	if doc.RequestBody != nil {
		bodies := NewRequestBodyBuilder(b.resolver)
		op.RequestBody = bodies.fromDoc(doc.RequestBody, attrs)
	}

	for _, rd := range doc.Responses {
		r := types.Response{Description: rd.Description}
		for _, c := range rd.Content {
			if r.Content == nil {
				r.Content = make(map[string]types.MediaType)
			}
			var s *types.Schema
			if t, err := types.ParseTypeRef(c.Type); err == nil {
				s = b.resolver.SchemaFor(t, "")
			}
			for _, mt := range mediaTypesFor(c.MediaType, attrs.MethodProduces) {
				r.Content[mt] = types.MediaType{Schema: s.Clone()}
			}
		}
		op.Responses[rd.Status] = withDescription(rd.Status, r)
	}
	return op
}
