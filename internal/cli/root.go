// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for routedoc.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/openapi"
	"github.com/api2spec/routedoc/internal/scanner"
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	flavor  string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "routedoc",
	Short: "OpenAPI document synthesis from route metadata",
	Long: `routedoc synthesizes an OpenAPI 3 document from route manifests: the
controllers, handlers, parameters and models of a web application.

Routes reaching the same path and verb are merged into one operation,
request bodies are assembled from their contributing parameters, and
controller advice contributes responses to every operation.

Example:
  routedoc generate                    # Generate from manifests under the current directory
  routedoc init                        # Initialize a new config file
  routedoc check --ci                  # Fail when the document is out of date
  routedoc watch                       # Watch manifests and regenerate
  routedoc serve                       # Serve the document over HTTP`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: routedoc.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (default: openapi.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: yaml, json (default: yaml)")
	rootCmd.PersistentFlags().StringVar(&flavor, "flavor", "", "return type unwrapping: servlet, reactive")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(serveCmd)
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if flavor != "" {
		cfg.Generation.Flavor = flavor
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// sourcePaths returns the manifest roots named on the command line, or the
// configured ones.
func sourcePaths(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Source.Paths
}

// newScanner creates a manifest scanner from the source configuration.
func newScanner(cfg *config.Config) *scanner.Scanner {
	return scanner.New(scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
}

// newResource creates a document resource reading manifests under paths.
func newResource(cfg *config.Config, paths []string, opts ...openapi.Option) *openapi.Resource {
	source := metadata.NewManifestSource(newScanner(cfg), paths)
	opts = append([]openapi.Option{openapi.WithLogger(newLogger())}, opts...)
	return openapi.NewResource(cfg, source, opts...)
}

// newLogger returns the structured logger for the verbosity flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
