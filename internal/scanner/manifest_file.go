// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers route manifest files.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// ManifestFile represents a discovered route manifest.
type ManifestFile struct {
	// Path is the absolute path to the file
	Path string

	// Format is the manifest encoding ("yaml" or "json")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

var formatExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
}

// DetectFormat returns the manifest encoding implied by a file extension.
func DetectFormat(path string) string {
	return formatExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsManifestFile checks if a file path has a manifest extension.
func IsManifestFile(path string) bool {
	return DetectFormat(path) != ""
}
