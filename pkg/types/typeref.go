// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"
	"strings"
)

// TypeRef is a declared type as written on a handler signature or a model
// field, e.g. "Mono[ResponseEntity[Widget]]". Java-style angle brackets are
// accepted on input and normalized to square brackets.
type TypeRef struct {
	Name string
	Args []TypeRef
}

// ParseTypeRef parses a declared type. Nested generics are split by
// counting bracket depth. A trailing "[]" declares an array and parses as
// Array[T].
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if elem, ok := strings.CutSuffix(s, "[]"); ok {
		ref, err := ParseTypeRef(elem)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Name: "Array", Args: []TypeRef{ref}}, nil
	}
	s = strings.NewReplacer("<", "[", ">", "]").Replace(s)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type")
	}

	start := strings.Index(s, "[")
	if start == -1 {
		if strings.ContainsAny(s, "],") {
			return TypeRef{}, fmt.Errorf("malformed type %q", s)
		}
		return TypeRef{Name: s}, nil
	}
	if !strings.HasSuffix(s, "]") || start == 0 {
		return TypeRef{}, fmt.Errorf("malformed type %q", s)
	}

	ref := TypeRef{Name: strings.TrimSpace(s[:start])}
	var current strings.Builder
	depth := 0
	for _, r := range s[start+1 : len(s)-1] {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return TypeRef{}, fmt.Errorf("unbalanced brackets in %q", s)
			}
		case ',':
			if depth == 0 {
				arg, err := ParseTypeRef(current.String())
				if err != nil {
					return TypeRef{}, err
				}
				ref.Args = append(ref.Args, arg)
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if depth != 0 {
		return TypeRef{}, fmt.Errorf("unbalanced brackets in %q", s)
	}
	arg, err := ParseTypeRef(current.String())
	if err != nil {
		return TypeRef{}, err
	}
	ref.Args = append(ref.Args, arg)
	return ref, nil
}

// MustParseTypeRef is ParseTypeRef for literals known to be valid.
func MustParseTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// IsZero reports whether no type was declared.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// IsGeneric reports whether the type carries type arguments.
func (t TypeRef) IsGeneric() bool {
	return len(t.Args) > 0
}

// SimpleName strips any package or namespace qualifier.
func (t TypeRef) SimpleName() string {
	name := t.Name
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// String renders the type in canonical Name[Arg,...] form.
func (t TypeRef) String() string {
	if !t.IsGeneric() {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "[" + strings.Join(args, ",") + "]"
}

// SchemaName renders a component-safe name: Page[Widget] becomes Page_Widget.
func (t TypeRef) SchemaName() string {
	if !t.IsGeneric() {
		return t.SimpleName()
	}
	parts := []string{t.SimpleName()}
	for _, a := range t.Args {
		parts = append(parts, a.SchemaName())
	}
	return strings.Join(parts, "_")
}
