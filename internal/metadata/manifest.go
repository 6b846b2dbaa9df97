// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/routedoc/internal/scanner"
	"github.com/api2spec/routedoc/pkg/types"
)

// Manifest is the on-disk form of route metadata. JSON manifests are read
// with the same decoder.
type Manifest struct {
	Models      []*Model      `yaml:"models,omitempty"`
	Controllers []*Controller `yaml:"controllers,omitempty"`
}

var validLocations = map[string]bool{
	LocationPath:   true,
	LocationQuery:  true,
	LocationHeader: true,
	LocationCookie: true,
	LocationBody:   true,
	LocationPart:   true,
}

// ParseManifest decodes and validates one manifest. Unknown keys are errors.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	for _, model := range m.Models {
		for _, f := range model.Fields {
			if err := checkType(f.Type, "model "+model.Name+" field "+f.Name); err != nil {
				return err
			}
		}
	}
	for _, c := range m.Controllers {
		for _, h := range c.Handlers {
			where := c.Name + "#" + h.Name
			if h.Returns != "" {
				if err := checkType(h.Returns, where+" return type"); err != nil {
					return err
				}
			}
			for _, p := range h.Params {
				if !validLocations[p.In] {
					return fmt.Errorf("%w: %s parameter %q has unknown location %q", ErrInvalidManifest, where, p.Name, p.In)
				}
				if err := checkType(p.Type, where+" parameter "+p.Name); err != nil {
					return err
				}
			}
			for _, v := range h.Mapping.Methods {
				if _, err := types.ParseMethod(v); err != nil {
					return fmt.Errorf("%w: %s: %v", ErrInvalidManifest, where, err)
				}
			}
		}
	}
	return nil
}

func checkType(t, where string) error {
	if _, err := types.ParseTypeRef(t); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidManifest, where, err)
	}
	return nil
}

// Register adds the manifest's models and controllers to r.
func (m *Manifest) Register(r *Registry) error {
	for _, model := range m.Models {
		if err := r.AddModel(model); err != nil {
			return err
		}
	}
	for _, c := range m.Controllers {
		if err := r.AddController(c); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifests builds a registry from discovered manifest files, in order.
func LoadManifests(files []scanner.ManifestFile) (*Registry, error) {
	reg := NewRegistry()
	for _, f := range files {
		m, err := ParseManifest(f.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		if err := m.Register(reg); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	return reg, nil
}

// ManifestSource scans paths for manifests on every Load.
type ManifestSource struct {
	Scanner *scanner.Scanner
	Paths   []string
}

// NewManifestSource creates a source reading manifests under paths.
func NewManifestSource(s *scanner.Scanner, paths []string) *ManifestSource {
	return &ManifestSource{Scanner: s, Paths: paths}
}

// Load scans and parses the manifests.
func (s *ManifestSource) Load() (*Registry, error) {
	files, err := s.Scanner.ScanPaths(s.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan manifests: %w", err)
	}
	return LoadManifests(files)
}
