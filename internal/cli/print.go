// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/openapi"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document to stdout",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, it will print that file, converted when --format
is given. Otherwise, it will generate and print the document from the
current route manifests.

Example:
  routedoc print                      # Generate and print
  routedoc print openapi.yaml         # Print existing file
  routedoc print openapi.yaml -f json # Convert an existing file
  routedoc print | yq '.paths'        # Pipe to yq for processing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		filePath := args[0]
		if format == "" {
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", filePath, err)
			}
			_, err = out.Write(data)
			return err
		}
		doc, err := openapi.ReadFile(filePath)
		if err != nil {
			return err
		}
		return openapi.Encode(doc, format, out)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printVerbose("Print configuration:")
	printVerbose("  Format: %s", cfg.Format)

	doc, err := newResource(cfg, cfg.Source.Paths).Document()
	if err != nil {
		return err
	}
	return openapi.Encode(doc, cfg.Format, out)
}
