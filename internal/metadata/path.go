// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package metadata

import "strings"

// Patterns returns the normalized paths a handler is mapped to: every owner
// path joined with every handler path.
func (h *Handler) Patterns() []string {
	prefixes := []string{""}
	if h.Owner != nil && len(h.Owner.Mapping.Paths) > 0 {
		prefixes = h.Owner.Mapping.Paths
	}
	suffixes := []string{""}
	if len(h.Mapping.Paths) > 0 {
		suffixes = h.Mapping.Paths
	}

	seen := make(map[string]bool)
	var out []string
	for _, prefix := range prefixes {
		for _, suffix := range suffixes {
			p := NormalizePath(JoinPath(prefix, suffix))
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// JoinPath joins two path segments with exactly one slash between them.
func JoinPath(prefix, suffix string) string {
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(suffix, "/")
}

// NormalizePath strips regular expressions from path variables
// ("/w/{id:[0-9]+}" becomes "/w/{id}"), collapses duplicate slashes, and
// drops a trailing slash.
func NormalizePath(p string) string {
	var sb strings.Builder
	depth := 0
	skipping := false
	for _, r := range p {
		switch {
		case r == '{':
			depth++
			if depth == 1 {
				skipping = false
				sb.WriteRune(r)
				continue
			}
		case r == '}':
			depth--
			if depth == 0 {
				skipping = false
				sb.WriteRune(r)
				continue
			}
		case r == ':' && depth == 1:
			skipping = true
		}
		if !skipping {
			sb.WriteRune(r)
		}
	}

	out := sb.String()
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	if len(out) > 1 {
		out = strings.TrimSuffix(out, "/")
	}
	return out
}
