// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"
	"strings"
)

// HTTPMethod is an HTTP verb that can hold an operation in a PathItem.
type HTTPMethod string

// Supported HTTP methods.
const (
	MethodGet     HTTPMethod = "GET"
	MethodPut     HTTPMethod = "PUT"
	MethodPost    HTTPMethod = "POST"
	MethodDelete  HTTPMethod = "DELETE"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodHead    HTTPMethod = "HEAD"
	MethodPatch   HTTPMethod = "PATCH"
	MethodTrace   HTTPMethod = "TRACE"
)

// slot gives access to the operation field of one verb.
type slot struct {
	get func(*PathItem) *Operation
	set func(*PathItem, *Operation)
}

// slots is the single verb dispatch table. Everything that reads or writes a
// verb's operation goes through it.
var slots = map[HTTPMethod]slot{
	MethodGet:     {func(p *PathItem) *Operation { return p.Get }, func(p *PathItem, o *Operation) { p.Get = o }},
	MethodPut:     {func(p *PathItem) *Operation { return p.Put }, func(p *PathItem, o *Operation) { p.Put = o }},
	MethodPost:    {func(p *PathItem) *Operation { return p.Post }, func(p *PathItem, o *Operation) { p.Post = o }},
	MethodDelete:  {func(p *PathItem) *Operation { return p.Delete }, func(p *PathItem, o *Operation) { p.Delete = o }},
	MethodOptions: {func(p *PathItem) *Operation { return p.Options }, func(p *PathItem, o *Operation) { p.Options = o }},
	MethodHead:    {func(p *PathItem) *Operation { return p.Head }, func(p *PathItem, o *Operation) { p.Head = o }},
	MethodPatch:   {func(p *PathItem) *Operation { return p.Patch }, func(p *PathItem, o *Operation) { p.Patch = o }},
	MethodTrace:   {func(p *PathItem) *Operation { return p.Trace }, func(p *PathItem, o *Operation) { p.Trace = o }},
}

// AllMethods lists every verb in document order.
var AllMethods = []HTTPMethod{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// DefaultMethods is what a mapping without explicit verbs answers to.
var DefaultMethods = []HTTPMethod{
	MethodGet, MethodPost, MethodPut, MethodPatch,
	MethodDelete, MethodOptions, MethodHead,
}

// ParseMethod converts a verb name, in any case, to an HTTPMethod.
func ParseMethod(s string) (HTTPMethod, error) {
	m := HTTPMethod(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := slots[m]; !ok {
		return "", fmt.Errorf("unsupported HTTP method %q", s)
	}
	return m, nil
}

// Lower returns the verb as it appears as a PathItem key.
func (m HTTPMethod) Lower() string {
	return strings.ToLower(string(m))
}

// Operation returns the operation stored for the verb, or nil.
func (p *PathItem) Operation(m HTTPMethod) *Operation {
	s, ok := slots[m]
	if !ok || p == nil {
		return nil
	}
	return s.get(p)
}

// SetOperation stores op in the verb's slot.
func (p *PathItem) SetOperation(m HTTPMethod, op *Operation) {
	if s, ok := slots[m]; ok {
		s.set(p, op)
	}
}

// Operations returns the non-nil operations keyed by verb.
func (p *PathItem) Operations() map[HTTPMethod]*Operation {
	ops := make(map[HTTPMethod]*Operation)
	if p == nil {
		return ops
	}
	for _, m := range AllMethods {
		if op := slots[m].get(p); op != nil {
			ops[m] = op
		}
	}
	return ops
}
