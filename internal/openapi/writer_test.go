// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/routedoc/pkg/types"
)

func createTestDoc() *types.OpenAPI {
	doc := widgetDoc()
	doc.OpenAPI = "3.0.1"
	doc.Info = types.Info{Title: "Widget API", Description: "Widgets", Version: "1.0.0"}
	doc.Servers = []types.Server{{URL: "https://api.example.com", Description: "Production"}}
	return doc
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format   string
		contains []string
	}{
		{"yaml", []string{"openapi: 3.0.1", "title: Widget API", "/widgets/{id}:", "operationId: get"}},
		{"YML", []string{"openapi: 3.0.1"}},
		{"json", []string{`"openapi": "3.0.1"`, `"title": "Widget API"`, `"/widgets":`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(createTestDoc(), tt.format, &buf))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	err := Encode(createTestDoc(), "xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]string{"yaml": FormatYAML, "YML": FormatYAML, "Json": FormatJSON}
	for input, want := range tests {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "json", FormatFor("out/openapi.JSON"))
	assert.Equal(t, "yaml", FormatFor("openapi.yml"))
	assert.Equal(t, "yaml", FormatFor("openapi"))
}

func TestWriteFile_InferFormat(t *testing.T) {
	doc := createTestDoc()
	tmpDir := t.TempDir()

	tests := []struct {
		filename string
		contains string
	}{
		{"spec.yaml", "openapi:"},
		{"spec.yml", "openapi:"},
		{"spec.json", `"openapi":`},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.filename)
			require.NoError(t, WriteFile(doc, path, ""))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.contains)
		})
	}
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "openapi.yaml")

	require.NoError(t, WriteFile(createTestDoc(), path, "yaml"))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.txt")

	err := WriteFile(createTestDoc(), path, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncode_JSONIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(createTestDoc(), FormatJSON, &buf))

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"title"`) {
			assert.Equal(t, `    "title": "Widget API",`, line)
			break
		}
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"yaml", "spec.yaml", "openapi: \"3.0.1\"\ninfo:\n  title: Widget API\n  version: 1.0.0\npaths: {}\n", ""},
		{"json", "spec.json", `{"openapi": "3.0.1", "info": {"title": "Widget API", "version": "1.0.0"}, "paths": {}}`, ""},
		{"unknown extension", "spec.txt", "openapi: \"3.0.1\"\ninfo:\n  title: Widget API\n", ""},
		{"invalid yaml", "bad.yaml", "invalid: yaml: content: {", "failed to parse YAML"},
		{"invalid json", "bad.json", "{invalid json}", "failed to parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			doc, err := ReadFile(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Widget API", doc.Info.Title)
		})
	}

	_, err := ReadFile(filepath.Join(tmpDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

// A written document reads back to an identical diff baseline.
func TestRoundTrip(t *testing.T) {
	for _, file := range []string{"spec.yaml", "spec.json"} {
		t.Run(file, func(t *testing.T) {
			original := createTestDoc()
			path := filepath.Join(t.TempDir(), file)
			require.NoError(t, WriteFile(original, path, ""))

			loaded, err := ReadFile(path)
			require.NoError(t, err)

			assert.Equal(t, original.Info, loaded.Info)
			assert.Equal(t, original.Servers, loaded.Servers)

			result, err := NewDiffer().Diff(original, loaded)
			require.NoError(t, err)
			assert.Empty(t, result.PathChanges)
		})
	}
}
