// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/openapi"
	"github.com/api2spec/routedoc/pkg/types"
)

var diffFailOnBreaking bool

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents operation by operation and show the
differences.

If only one file is provided, it will be compared against the document
generated from the current route manifests.

If no files are provided, the output file will be compared against
what would be generated from the current route manifests.

Example:
  routedoc diff                           # Compare output file vs generated
  routedoc diff openapi.yaml              # Compare file vs generated
  routedoc diff old.yaml new.yaml         # Compare two files
  routedoc diff --fail-on-breaking        # Exit non-zero on breaking changes`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "return an error when breaking changes are found")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var before, after *types.OpenAPI
	var err error

	switch len(args) {
	case 2:
		if before, err = readSpec(args[0]); err != nil {
			return err
		}
		if after, err = readSpec(args[1]); err != nil {
			return err
		}
	default:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		file := cfg.Output
		if len(args) == 1 {
			file = args[0]
		}
		printVerbose("Comparing %s against generated...", file)
		if before, err = readSpec(file); err != nil {
			return err
		}
		if after, err = newResource(cfg, cfg.Source.Paths).Document(); err != nil {
			return err
		}
	}

	result, err := openapi.NewDiffer().Diff(before, after)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), openapi.FormatDiff(result))

	if diffFailOnBreaking && result.HasBreakingChanges {
		return errors.New("breaking changes detected")
	}
	return nil
}

func readSpec(path string) (*types.OpenAPI, error) {
	doc, err := openapi.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	return doc, nil
}
