// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns are relative to (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns a manifest must match (e.g., "**/*.routes.yaml")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to skip (e.g., "vendor/**")
	ExcludePatterns []string
}

// Scanner discovers route manifests in a project.
type Scanner struct {
	config Config
	base   string
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.routes.yaml", "**/*.routes.yml", "**/*.routes.json"}
	}
	base, err := filepath.Abs(config.BasePath)
	if err != nil {
		base = config.BasePath
	}
	return &Scanner{config: config, base: base}
}

// Scan discovers all manifests under the base path.
func (s *Scanner) Scan() ([]ManifestFile, error) {
	return s.ScanPath(s.base)
}

// ScanPath scans a file or directory for manifests. Results are sorted by path.
func (s *Scanner) ScanPath(path string) ([]ManifestFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	// An explicitly named file only needs a manifest extension.
	if !info.IsDir() {
		if !IsManifestFile(absPath) {
			return nil, nil
		}
		f, err := readManifest(absPath, info)
		if err != nil {
			return nil, err
		}
		return []ManifestFile{f}, nil
	}

	var files []ManifestFile
	err = s.walk(absPath, func(filePath string, info fs.FileInfo) {
		f, err := readManifest(filePath, info)
		if err != nil {
			return
		}
		files = append(files, f)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ScanPaths scans multiple paths, dropping duplicates.
func (s *Scanner) ScanPaths(paths []string) ([]ManifestFile, error) {
	var allFiles []ManifestFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

// Dirs returns every non-excluded directory under the given roots, for
// registering file watches.
func (s *Scanner) Dirs(paths []string) ([]string, error) {
	var dirs []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		err = filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if s.shouldExcludeDir(s.rel(p)) {
				return filepath.SkipDir
			}
			dirs = append(dirs, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}
	return dirs, nil
}

// Matches reports whether a path would be picked up by a scan.
func (s *Scanner) Matches(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return s.shouldIncludeFile(absPath)
}

// FileCount returns a quick count of matching files without reading content.
func (s *Scanner) FileCount() (int, error) {
	count := 0
	err := s.walk(s.base, func(string, fs.FileInfo) { count++ })
	return count, err
}

func (s *Scanner) walk(root string, visit func(string, fs.FileInfo)) error {
	return filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}
		if d.IsDir() {
			if s.shouldExcludeDir(s.rel(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.shouldIncludeFile(filePath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		visit(filePath, info)
		return nil
	})
}

func readManifest(path string, info fs.FileInfo) (ManifestFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ManifestFile{
		Path:    path,
		Format:  DetectFormat(path),
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

// rel returns a slash-separated path relative to the base path.
func (s *Scanner) rel(path string) string {
	relPath, err := filepath.Rel(s.base, path)
	if err != nil {
		relPath = filepath.Base(path)
	}
	return filepath.ToSlash(relPath)
}

func (s *Scanner) shouldIncludeFile(filePath string) bool {
	if !IsManifestFile(filePath) {
		return false
	}
	relPath := s.rel(filePath)
	if matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}
	return matchesPatterns(relPath, s.config.IncludePatterns)
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		// "vendor" matches "vendor/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")
		if relPath == dirPattern {
			return true
		}

		if matched, _ := doublestar.Match(pattern, relPath+"/x.routes.yaml"); matched {
			return true
		}
	}

	return false
}

func matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
