// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"sort"

	"github.com/api2spec/routedoc/pkg/types"
)

// Customizer post-processes a finished document. Customizers run in
// registration order and may change anything.
type Customizer interface {
	Customize(doc *types.OpenAPI) error
}

// CustomizerFunc adapts a function to Customizer.
type CustomizerFunc func(doc *types.OpenAPI) error

// Customize calls f.
func (f CustomizerFunc) Customize(doc *types.OpenAPI) error {
	return f(doc)
}

// SortTags orders the document tag list by name, adding an entry for every
// tag an operation uses.
func SortTags() Customizer {
	return CustomizerFunc(func(doc *types.OpenAPI) error {
		for _, path := range SortedPaths(doc.Paths) {
			for _, verb := range types.AllMethods {
				op := doc.Paths[path].Operation(verb)
				if op == nil {
					continue
				}
				for _, t := range op.Tags {
					if !doc.HasTag(t) {
						doc.Tags = append(doc.Tags, types.Tag{Name: t})
					}
				}
			}
		}
		sort.SliceStable(doc.Tags, func(i, j int) bool {
			return doc.Tags[i].Name < doc.Tags[j].Name
		})
		return nil
	})
}
