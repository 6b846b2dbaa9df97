// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/openapi"
)

var (
	generateDryRun  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate the OpenAPI document from route manifests",
	Long: `Generate an OpenAPI document from the route manifests found under the
given paths (or the configured source paths).

Every manifest is loaded into one route registry, then a single
computation pass merges all routes into the document, which is written
to the output file.

Example:
  routedoc generate                           # Generate from current directory
  routedoc generate ./api ./admin             # Generate from specific paths
  routedoc generate --flavor reactive         # Unwrap Mono/Flux return types
  routedoc generate --dry-run                 # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the document instead of writing it")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "manifest glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}

	paths := sourcePaths(cfg, args)

	printVerbose("Configuration:")
	printVerbose("  Flavor: %s", cfg.Generation.Flavor)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	doc, err := newResource(cfg, paths).Document()
	if err != nil {
		return err
	}

	if generateDryRun {
		return openapi.Encode(doc, cfg.Format, cmd.OutOrStdout())
	}

	if err := openapi.WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	printInfo("Wrote %s (%d paths, %d schemas)", cfg.Output, len(doc.Paths), len(doc.Components.Schemas))
	return nil
}
