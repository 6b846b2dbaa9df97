// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for routedoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// Config represents the routedoc configuration.
type Config struct {
	// Output is the output file path for the generated document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// OpenAPI contains document-level configuration
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi" json:"openapi"`

	// Source contains route manifest discovery configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Generation contains synthesis behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`

	// Serve contains HTTP surface configuration
	Serve ServeConfig `mapstructure:"serve" yaml:"serve" json:"serve"`
}

// OpenAPIConfig contains document-level configuration.
type OpenAPIConfig struct {
	// Version is the OpenAPI version written to the document
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	Info     InfoConfig     `mapstructure:"info" yaml:"info" json:"info"`
	Servers  []ServerConfig `mapstructure:"servers" yaml:"servers" json:"servers"`
	Tags     []TagConfig    `mapstructure:"tags" yaml:"tags" json:"tags"`
	Security SecurityConfig `mapstructure:"security" yaml:"security" json:"security"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	Title          string        `mapstructure:"title" yaml:"title" json:"title"`
	Description    string        `mapstructure:"description" yaml:"description" json:"description"`
	Version        string        `mapstructure:"version" yaml:"version" json:"version"`
	TermsOfService string        `mapstructure:"termsOfService" yaml:"termsOfService" json:"termsOfService"`
	Contact        ContactConfig `mapstructure:"contact" yaml:"contact" json:"contact"`
	License        LicenseConfig `mapstructure:"license" yaml:"license" json:"license"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	URL   string `mapstructure:"url" yaml:"url" json:"url"`
	Email string `mapstructure:"email" yaml:"email" json:"email"`
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	URL  string `mapstructure:"url" yaml:"url" json:"url"`
}

// ServerConfig contains server configuration.
type ServerConfig struct {
	URL         string `mapstructure:"url" yaml:"url" json:"url"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// TagConfig contains tag configuration.
type TagConfig struct {
	Name        string `mapstructure:"name" yaml:"name" json:"name"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// SecurityConfig contains security configuration.
type SecurityConfig struct {
	// Schemes is a map of security scheme configurations
	Schemes map[string]SecuritySchemeConfig `mapstructure:"schemes" yaml:"schemes" json:"schemes"`

	// Default is a list of scheme names required by every operation
	Default []string `mapstructure:"default" yaml:"default" json:"default"`
}

// SecuritySchemeConfig contains security scheme configuration.
type SecuritySchemeConfig struct {
	// Type is the security scheme type (apiKey, http, oauth2, openIdConnect)
	Type string `mapstructure:"type" yaml:"type" json:"type"`

	Name         string `mapstructure:"name" yaml:"name" json:"name"`
	In           string `mapstructure:"in" yaml:"in" json:"in"`
	Scheme       string `mapstructure:"scheme" yaml:"scheme" json:"scheme"`
	BearerFormat string `mapstructure:"bearerFormat" yaml:"bearerFormat" json:"bearerFormat"`
	Description  string `mapstructure:"description" yaml:"description" json:"description"`
}

// SourceConfig contains route manifest discovery configuration.
type SourceConfig struct {
	// Paths is a list of roots to scan for manifests
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns a manifest must match
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to skip
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// GenerationConfig contains synthesis behavior configuration.
type GenerationConfig struct {
	// Flavor selects the return-type unwrap rules (servlet, reactive)
	Flavor string `mapstructure:"flavor" yaml:"flavor" json:"flavor"`

	// DefaultConsumes is used when neither a handler nor its owner declares consumes
	DefaultConsumes string `mapstructure:"defaultConsumes" yaml:"defaultConsumes" json:"defaultConsumes"`

	// DefaultProduces is used when neither a handler nor its owner declares produces
	DefaultProduces string `mapstructure:"defaultProduces" yaml:"defaultProduces" json:"defaultProduces"`

	// PathsToMatch restricts documented paths to these glob patterns; empty matches all
	PathsToMatch []string `mapstructure:"pathsToMatch" yaml:"pathsToMatch" json:"pathsToMatch"`

	// PathsToExclude removes paths matching these glob patterns
	PathsToExclude []string `mapstructure:"pathsToExclude" yaml:"pathsToExclude" json:"pathsToExclude"`

	// SortTags orders document tags by name after each pass
	SortTags bool `mapstructure:"sortTags" yaml:"sortTags" json:"sortTags"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// ServeConfig contains HTTP surface configuration.
type ServeConfig struct {
	Address     string `mapstructure:"address" yaml:"address" json:"address"`
	DocsPath    string `mapstructure:"docsPath" yaml:"docsPath" json:"docsPath"`
	MetricsPath string `mapstructure:"metricsPath" yaml:"metricsPath" json:"metricsPath"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"routedoc.yaml",
	"routedoc.json",
	".routedoc.yaml",
	".routedoc.json",
}

// Supported flavors.
const (
	FlavorServlet  = "servlet"
	FlavorReactive = "reactive"
)

var supportedFlavors = []string{FlavorServlet, FlavorReactive}

var supportedFormats = []string{"yaml", "json"}

var supportedVersions = []string{"3.0.1", "3.0.3", "3.1.0"}

var defaultInclude = []string{"**/*.routes.yaml", "**/*.routes.yml", "**/*.routes.json"}

var defaultExclude = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"**/testdata/**",
}

// ErrConfigNotFound is returned when an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "openapi.yaml",
		Format: "yaml",
		OpenAPI: OpenAPIConfig{
			Version: "3.0.1",
			Info: InfoConfig{
				Title:   "OpenAPI definition",
				Version: "v0",
			},
		},
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: append([]string(nil), defaultInclude...),
			Exclude: append([]string(nil), defaultExclude...),
		},
		Generation: GenerationConfig{
			Flavor:          FlavorServlet,
			DefaultConsumes: "application/json",
			DefaultProduces: "*/*",
			SortTags:        true,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
		Serve: ServeConfig{
			Address:     ":8080",
			DocsPath:    "/v3/api-docs",
			MetricsPath: "/metrics",
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. routedoc.yaml
// 2. routedoc.json
// 3. .routedoc.yaml
// 4. .routedoc.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ROUTEDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		v.SetConfigFile(configPath)
	} else {
		name := ConfigFilePath()
		if name == "" {
			return Default(), nil
		}
		v.SetConfigFile(name)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults mirrors Default for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.info.title", d.OpenAPI.Info.Title)
	v.SetDefault("openapi.info.version", d.OpenAPI.Info.Version)
	v.SetDefault("source.paths", d.Source.Paths)
	v.SetDefault("source.include", d.Source.Include)
	v.SetDefault("source.exclude", d.Source.Exclude)
	v.SetDefault("generation.flavor", d.Generation.Flavor)
	v.SetDefault("generation.defaultConsumes", d.Generation.DefaultConsumes)
	v.SetDefault("generation.defaultProduces", d.Generation.DefaultProduces)
	v.SetDefault("generation.sortTags", d.Generation.SortTags)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("serve.address", d.Serve.Address)
	v.SetDefault("serve.docsPath", d.Serve.DocsPath)
	v.SetDefault("serve.metricsPath", d.Serve.MetricsPath)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Generation.Flavor != "" && !contains(supportedFlavors, c.Generation.Flavor) {
		errs = append(errs, ValidationError{
			Field:   "generation.flavor",
			Message: fmt.Sprintf("unsupported flavor %q, must be one of: %s", c.Generation.Flavor, strings.Join(supportedFlavors, ", ")),
		})
	}

	if c.OpenAPI.Version != "" && !contains(supportedVersions, c.OpenAPI.Version) {
		errs = append(errs, ValidationError{
			Field:   "openapi.version",
			Message: fmt.Sprintf("unsupported OpenAPI version %q, must be one of: %s", c.OpenAPI.Version, strings.Join(supportedVersions, ", ")),
		})
	}

	for _, field := range []struct {
		name     string
		patterns []string
	}{
		{"generation.pathsToMatch", c.Generation.PathsToMatch},
		{"generation.pathsToExclude", c.Generation.PathsToExclude},
		{"source.include", c.Source.Include},
		{"source.exclude", c.Source.Exclude},
	} {
		for _, p := range field.patterns {
			if !doublestar.ValidatePattern(p) {
				errs = append(errs, ValidationError{
					Field:   field.name,
					Message: fmt.Sprintf("invalid glob pattern %q", p),
				})
			}
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.Serve.DocsPath != "" && !strings.HasPrefix(c.Serve.DocsPath, "/") {
		errs = append(errs, ValidationError{
			Field:   "serve.docsPath",
			Message: "docs path must start with /",
		})
	}

	if c.OpenAPI.Info.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "openapi.info.title",
			Message: "title is required",
		})
	}

	if c.OpenAPI.Info.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "openapi.info.version",
			Message: "version is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the first config file present in the working directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
