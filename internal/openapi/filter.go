// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter decides which normalized paths are documented.
type PathFilter struct {
	match   []string
	exclude []string
}

// NewPathFilter creates a filter. An empty match list admits every path.
func NewPathFilter(match, exclude []string) *PathFilter {
	return &PathFilter{match: match, exclude: exclude}
}

// Allows reports whether path is documented. Only absolute paths qualify.
func (f *PathFilter) Allows(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	if f == nil {
		return true
	}
	for _, pattern := range f.exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}
	if len(f.match) == 0 {
		return true
	}
	for _, pattern := range f.match {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
