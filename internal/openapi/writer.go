// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/routedoc/pkg/types"
)

// Document encodings.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParseFormat normalizes a format name. "yml" is an alias of "yaml".
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatFor infers the format of a document file from its extension.
// Anything but .json is YAML.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes doc to out in the given format.
func Encode(doc *types.OpenAPI, format string, out io.Writer) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// WriteFile writes doc to path, creating parent directories. An empty
// format is inferred from the extension. Nothing is created when the
// format is not supported.
func WriteFile(doc *types.OpenAPI, path, format string) error {
	if format == "" {
		format = FormatFor(path)
	}
	if _, err := ParseFormat(format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(doc, format, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadFile loads a previously written document. JSON files are decoded as
// JSON, everything else as YAML.
func ReadFile(path string) (*types.OpenAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc types.OpenAPI
	if FormatFor(path) == FormatJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}
