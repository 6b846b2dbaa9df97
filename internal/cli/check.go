// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches the manifests
	ExitCodeDifference = 1 // Document differs from the manifests
	ExitCodeCheckError = 2 // Error during analysis
)

var (
	checkStrict bool
	checkIgnore []string
	checkCI     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the document matches the current manifests",
	Long: `Check validates that your OpenAPI document matches your current route
manifests.

This command generates a document from the manifests and compares it with
the existing output file. It's useful for CI pipelines to ensure the
document is always in sync with the routes.

Exit codes (with --ci):
  0  Document matches the manifests
  1  Document differs from the manifests
  2  Error during analysis

Example:
  routedoc check                      # Basic validation
  routedoc check --strict=false       # Report differences without failing
  routedoc check --ci                 # CI mode with appropriate exit codes
  routedoc check --ignore "/internal/**"  # Ignore matching paths and schemas`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns of paths or schema names to ignore")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	err := check(args)
	if err == nil || !checkCI {
		return err
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return err
	}
	return &ExitError{Code: ExitCodeCheckError, Err: err}
}

func check(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := sourcePaths(cfg, args)

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))
	printVerbose("  Document: %s", cfg.Output)

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printError("Document not found: %s", cfg.Output)
		printInfo("Run 'routedoc generate' first to create the document")
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("document not found: %s", cfg.Output)}
	}

	existing, err := openapi.ReadFile(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to read existing document: %w", err)
	}

	generated, err := newResource(cfg, paths).Document()
	if err != nil {
		return err
	}

	result, err := openapi.NewDiffer().Diff(existing, generated)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}

	result = applyIgnorePatterns(result, checkIgnore)

	if result.IsEmpty() {
		printInfo("Document is in sync with the manifests")
		return nil
	}

	printInfo("Document differs from the manifests:\n")
	printInfo(result.Summary)
	printInfo("")

	if len(result.PathChanges) > 0 {
		printInfo("Operation changes:")
		for _, change := range result.PathChanges {
			printInfo("  %s %s %s", getChangeSymbol(change.Type), change.Method, change.Path)
		}
		printInfo("")
	}

	if len(result.SchemaChanges) > 0 {
		printInfo("Schema changes:")
		for _, change := range result.SchemaChanges {
			printInfo("  %s %s", getChangeSymbol(change.Type), change.Name)
		}
		printInfo("")
	}

	if result.HasBreakingChanges {
		printError("Breaking changes detected!")
	}

	printInfo("Run 'routedoc generate' to update the document")

	if checkStrict || checkCI {
		return &ExitError{Code: ExitCodeDifference, Err: errors.New("document differs from the manifests")}
	}
	return nil
}

// applyIgnorePatterns filters out changes that match ignore patterns.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{
		PathChanges:   make([]openapi.PathChange, 0),
		SchemaChanges: make([]openapi.SchemaChange, 0),
	}

	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	for _, change := range result.SchemaChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.SchemaChanges = append(filtered.SchemaChanges, change)
		}
	}

	for _, change := range filtered.PathChanges {
		if change.Breaking {
			filtered.HasBreakingChanges = true
			break
		}
	}
	if !filtered.HasBreakingChanges {
		for _, change := range filtered.SchemaChanges {
			if change.Type == openapi.DiffTypeRemoved {
				filtered.HasBreakingChanges = true
				break
			}
		}
	}

	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a path or schema name matches any glob pattern.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, s); ok {
			return true
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}

	ops := make(map[openapi.DiffType]int)
	for _, c := range result.PathChanges {
		ops[c.Type]++
	}
	schemas := make(map[openapi.DiffType]int)
	for _, c := range result.SchemaChanges {
		schemas[c.Type]++
	}

	var parts []string
	order := []openapi.DiffType{openapi.DiffTypeAdded, openapi.DiffTypeRemoved, openapi.DiffTypeModified}
	for _, t := range order {
		if n := ops[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d operation(s) %s", n, t))
		}
	}
	for _, t := range order {
		if n := schemas[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d schema(s) %s", n, t))
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}

	return summary
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t openapi.DiffType) string {
	switch t {
	case openapi.DiffTypeAdded:
		return "+"
	case openapi.DiffTypeRemoved:
		return "-"
	case openapi.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}
