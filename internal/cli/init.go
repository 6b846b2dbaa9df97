// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/scanner"
	"github.com/api2spec/routedoc/internal/util"
)

const defaultConfigFile = "routedoc.yaml"

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new routedoc configuration file",
	Long: `Initialize a new routedoc configuration file in the current directory.

This command creates a routedoc.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Infers the API title from go.mod
  - Points source paths at the directories holding route manifests
  - Sets up appropriate exclude patterns

Example:
  routedoc init                         # Create config with detected values
  routedoc init --flavor reactive       # Create config for reactive handlers
  routedoc init --force                 # Overwrite existing config
  routedoc init --interactive           # Interactive mode with prompts
  routedoc init --title "My API"        # Set custom API title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for OpenAPI info")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for OpenAPI info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for OpenAPI info")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := defaultConfigFile

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()
	if flavor != "" {
		cfg.Generation.Flavor = flavor
	}

	info := detectProjectInfo(projectRoot)
	if initTitle != "" {
		cfg.OpenAPI.Info.Title = initTitle
	} else if info.Title != "" {
		cfg.OpenAPI.Info.Title = info.Title
	}
	if initVersion != "" {
		cfg.OpenAPI.Info.Version = initVersion
	}
	if initDescription != "" {
		cfg.OpenAPI.Info.Description = initDescription
	}

	cfg.Source.Paths = detectManifestRoots(projectRoot, cfg)
	printVerbose("Manifest roots: %s", strings.Join(cfg.Source.Paths, ", "))

	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Flavor: %s", cfg.Generation.Flavor)
	printVerbose("Output: %s", cfg.Output)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title  string
	Module string
}

// detectProjectInfo detects project information from go.mod.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	file, err := os.Open(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return info
	}
	defer file.Close()

	lines := bufio.NewScanner(file)
	for lines.Scan() {
		line := lines.Text()
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		info.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))

		// "github.com/user/my-api" -> "My Api API"
		parts := strings.Split(info.Module, "/")
		name := parts[len(parts)-1]
		name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
		info.Title = util.ToTitle(name) + " API"
		break
	}

	return info
}

// detectManifestRoots returns the top-level directories holding route
// manifests, or "." when manifests sit at the root or none exist.
func detectManifestRoots(projectRoot string, cfg *config.Config) []string {
	s := scanner.New(scanner.Config{
		BasePath:        projectRoot,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
	files, err := s.Scan()
	if err != nil || len(files) == 0 {
		return []string{"."}
	}

	seen := make(map[string]bool)
	var roots []string
	for _, f := range files {
		rel, err := filepath.Rel(projectRoot, f.Path)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) == 1 {
			return []string{"."}
		}
		root := "./" + parts[0]
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	sort.Strings(roots)
	return roots
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string, value *string) {
		fmt.Printf("%s [%s]: ", label, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	prompt("API Title", &cfg.OpenAPI.Info.Title)
	prompt("API Version", &cfg.OpenAPI.Info.Version)
	prompt("API Description", &cfg.OpenAPI.Info.Description)
	prompt("Flavor (servlet/reactive)", &cfg.Generation.Flavor)
	prompt("Output file", &cfg.Output)
	prompt("Output format (yaml/json)", &cfg.Format)

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# routedoc configuration file
# Route manifests (*.routes.yaml) under source.paths are merged into one
# OpenAPI document written to output.

`
	return header + string(data), nil
}
