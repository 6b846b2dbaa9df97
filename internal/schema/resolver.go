// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/api2spec/routedoc/pkg/types"
)

// UnwrapRule recognizes a transparent wrapper type and returns the type it
// envelopes.
type UnwrapRule struct {
	Name    string
	Matches func(t types.TypeRef) bool
	Unwrap  func(t types.TypeRef) types.TypeRef
}

// Wrapper returns a rule unwrapping one layer of any of the named
// single-argument types.
func Wrapper(name string, wrappers ...string) UnwrapRule {
	set := nameSet(wrappers)
	return UnwrapRule{
		Name:    name,
		Matches: func(t types.TypeRef) bool { return isWrapper(t, set) },
		Unwrap:  func(t types.TypeRef) types.TypeRef { return t.Args[0] },
	}
}

// NestedWrapper returns a rule unwrapping an outer container and, when its
// argument is one of the inner wrappers, that layer too. It never unwraps
// more than two layers.
func NestedWrapper(name string, outer, inner []string) UnwrapRule {
	outerSet, innerSet := nameSet(outer), nameSet(inner)
	return UnwrapRule{
		Name:    name,
		Matches: func(t types.TypeRef) bool { return isWrapper(t, outerSet) },
		Unwrap: func(t types.TypeRef) types.TypeRef {
			arg := t.Args[0]
			if isWrapper(arg, innerSet) {
				return arg.Args[0]
			}
			return arg
		},
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func isWrapper(t types.TypeRef, set map[string]bool) bool {
	return len(t.Args) == 1 && set[t.SimpleName()]
}

// ServletRules unwraps the HTTP response envelope.
func ServletRules() []UnwrapRule {
	return []UnwrapRule{
		Wrapper("response-entity", "ResponseEntity"),
	}
}

// ReactiveRules unwraps single and multi-value publishers, including a
// response envelope nested inside them, and a bare response envelope.
func ReactiveRules() []UnwrapRule {
	return []UnwrapRule{
		NestedWrapper("publisher", []string{"Mono", "Flux"}, []string{"ResponseEntity"}),
		Wrapper("response-entity", "ResponseEntity"),
	}
}

// RulesFor returns the rule set of a deployment flavor ("servlet" or
// "reactive"). Unknown flavors get the servlet rules.
func RulesFor(flavor string) []UnwrapRule {
	if flavor == "reactive" {
		return ReactiveRules()
	}
	return ServletRules()
}

// Resolver converts declared types into schemas, unwrapping generic wrapper
// types with the first matching rule before handing the inner type to the
// leaf converter.
type Resolver struct {
	registry  *Registry
	converter Converter
	rules     []UnwrapRule
}

// NewResolver creates a resolver. Rules are tried in order.
func NewResolver(reg *Registry, conv Converter, rules []UnwrapRule) *Resolver {
	return &Resolver{registry: reg, converter: conv, rules: rules}
}

// Registry returns the component registry the resolver writes to.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve returns the schema of a declared type. Non-generic types go to the
// leaf converter. Generic types are unwrapped by the first matching rule;
// a generic type no rule matches yields nil.
func (r *Resolver) Resolve(t types.TypeRef, view string) *types.Schema {
	if !t.IsGeneric() {
		return r.converter.Convert(t, view, r.registry)
	}
	for _, rule := range r.rules {
		if rule.Matches(t) {
			return r.converter.Convert(rule.Unwrap(t), view, r.registry)
		}
	}
	return nil
}

// SchemaFor is Resolve with a fallback to the leaf converter for generic
// shapes no rule recognizes, such as collections.
func (r *Resolver) SchemaFor(t types.TypeRef, view string) *types.Schema {
	if s := r.Resolve(t, view); s != nil {
		return s
	}
	if t.IsGeneric() {
		return r.converter.Convert(t, view, r.registry)
	}
	return nil
}
