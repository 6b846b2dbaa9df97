// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/api2spec/routedoc/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// PathChange represents a change to an operation.
type PathChange struct {
	Type        DiffType
	Path        string
	Method      types.HTTPMethod
	Description string

	// Breaking marks removals and newly required inputs
	Breaking bool
}

// SchemaChange represents a change to a component schema.
type SchemaChange struct {
	Type        DiffType
	Name        string
	Description string
}

// DiffResult contains the differences between two documents.
type DiffResult struct {
	PathChanges   []PathChange
	SchemaChanges []SchemaChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.PathChanges) == 0 && len(d.SchemaChanges) == 0
}

// Differ compares two documents operation by operation.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares a (old) with b (new).
func (d *Differ) Diff(a, b *types.OpenAPI) (*DiffResult, error) {
	result := &DiffResult{
		PathChanges:   []PathChange{},
		SchemaChanges: []SchemaChange{},
	}

	d.diffPaths(pathsOf(a), pathsOf(b), result)
	d.diffSchemas(schemasOf(a), schemasOf(b), result)

	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)

	return result, nil
}

func pathsOf(doc *types.OpenAPI) map[string]*types.PathItem {
	if doc == nil {
		return nil
	}
	return doc.Paths
}

func schemasOf(doc *types.OpenAPI) map[string]*types.Schema {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return doc.Components.Schemas
}

// diffPaths compares every (path, verb) pair present on either side.
func (d *Differ) diffPaths(a, b map[string]*types.PathItem, result *DiffResult) {
	seen := make(map[string]bool)
	var paths []string
	for _, m := range []map[string]*types.PathItem{a, b} {
		for p := range m {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		aItem, bItem := a[path], b[path]
		for _, verb := range types.AllMethods {
			aOp, bOp := aItem.Operation(verb), bItem.Operation(verb)
			switch {
			case aOp == nil && bOp == nil:
			case aOp == nil:
				result.PathChanges = append(result.PathChanges, PathChange{
					Type:        DiffTypeAdded,
					Path:        path,
					Method:      verb,
					Description: fmt.Sprintf("Added %s %s", verb, path),
				})
			case bOp == nil:
				result.PathChanges = append(result.PathChanges, PathChange{
					Type:        DiffTypeRemoved,
					Path:        path,
					Method:      verb,
					Description: fmt.Sprintf("Removed %s %s", verb, path),
					Breaking:    true,
				})
			default:
				if what := d.operationChanges(aOp, bOp); len(what) > 0 {
					result.PathChanges = append(result.PathChanges, PathChange{
						Type:        DiffTypeModified,
						Path:        path,
						Method:      verb,
						Description: fmt.Sprintf("Modified %s %s (%s)", verb, path, strings.Join(what, ", ")),
						Breaking:    newlyRequired(aOp, bOp),
					})
				}
			}
		}
	}
}

// operationChanges names the parts of an operation that differ.
func (d *Differ) operationChanges(a, b *types.Operation) []string {
	var what []string
	if a.Summary != b.Summary || a.Description != b.Description {
		what = append(what, "documentation")
	}
	if a.OperationID != b.OperationID {
		what = append(what, "operationId")
	}
	if a.Deprecated != b.Deprecated {
		what = append(what, "deprecated")
	}
	if !equivalent(a.Tags, b.Tags) {
		what = append(what, "tags")
	}
	if !equivalent(a.Parameters, b.Parameters) {
		what = append(what, "parameters")
	}
	if !equivalent(a.RequestBody, b.RequestBody) {
		what = append(what, "requestBody")
	}
	if !equivalent(a.Responses, b.Responses) {
		what = append(what, "responses")
	}
	if !equivalent(a.Callbacks, b.Callbacks) {
		what = append(what, "callbacks")
	}
	return what
}

// equivalent reports whether a and b encode to the same JSON, so a nil and
// an empty collection compare equal, as they do once written.
func equivalent(a, b interface{}) bool {
	if isEmpty(a) && isEmpty(b) {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ja, jb)
}

func isEmpty(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	case reflect.Ptr:
		return rv.IsNil()
	}
	return false
}

// newlyRequired reports whether b requires an input a did not.
func newlyRequired(a, b *types.Operation) bool {
	required := make(map[string]bool)
	for _, p := range a.Parameters {
		if p.Required {
			required[p.In+":"+p.Name] = true
		}
	}
	for _, p := range b.Parameters {
		if p.Required && !required[p.In+":"+p.Name] {
			return true
		}
	}
	wasRequired := a.RequestBody != nil && a.RequestBody.Required
	return !wasRequired && b.RequestBody != nil && b.RequestBody.Required
}

// diffSchemas compares the component schemas of two documents.
func (d *Differ) diffSchemas(a, b map[string]*types.Schema, result *DiffResult) {
	for _, name := range SortedSchemas(a) {
		bSchema, exists := b[name]
		switch {
		case !exists:
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeRemoved,
				Name:        name,
				Description: fmt.Sprintf("Removed schema: %s", name),
			})
		case !equivalent(a[name], bSchema):
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeModified,
				Name:        name,
				Description: fmt.Sprintf("Modified schema: %s", name),
			})
		}
	}

	for _, name := range SortedSchemas(b) {
		if _, exists := a[name]; !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeAdded,
				Name:        name,
				Description: fmt.Sprintf("Added schema: %s", name),
			})
		}
	}
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	for _, change := range result.PathChanges {
		if change.Breaking {
			return true
		}
	}

	// Removed schemas are breaking
	for _, change := range result.SchemaChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	ops := make(map[DiffType]int)
	for _, c := range result.PathChanges {
		ops[c.Type]++
	}
	schemas := make(map[DiffType]int)
	for _, c := range result.SchemaChanges {
		schemas[c.Type]++
	}

	var parts []string
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := ops[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d operation(s) %s", n, t))
		}
	}
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := schemas[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d schema(s) %s", n, t))
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

func symbolFor(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	}
	return "  "
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== OpenAPI Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.PathChanges) > 0 {
		sb.WriteString("--- Operation Changes ---\n")
		for _, c := range result.PathChanges {
			fmt.Fprintf(&sb, "%s%s %s\n", symbolFor(c.Type), c.Method, c.Path)
		}
		sb.WriteString("\n")
	}

	if len(result.SchemaChanges) > 0 {
		sb.WriteString("--- Schema Changes ---\n")
		for _, c := range result.SchemaChanges {
			fmt.Fprintf(&sb, "%s%s\n", symbolFor(c.Type), c.Name)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
