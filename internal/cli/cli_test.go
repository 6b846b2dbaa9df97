// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetManifest = `
models:
  - name: Widget
    fields:
      - {name: id, type: Long, required: true}
      - {name: name, type: String}
controllers:
  - name: WidgetController
    paths: [/widgets]
    produces: [application/json]
    handlers:
      - name: listWidgets
        methods: [GET]
        returns: List<Widget>
      - name: getWidget
        methods: [GET]
        paths: ["/{id}"]
        returns: Widget
        params:
          - {name: id, in: path, type: Long, required: true}
`

const gadgetManifest = `
controllers:
  - name: GadgetController
    paths: [/gadgets]
    handlers:
      - name: listGadgets
        methods: [GET]
        returns: String
`

// executeCommand runs a command and returns output and error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// setupProject writes files into a temporary project, makes it the working
// directory and resets the command flags for the test.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	resetFlags(t)
	return dir
}

func resetFlags(t *testing.T) {
	t.Helper()

	saved := []func(){
		restore(&cfgFile), restore(&output), restore(&format), restore(&flavor),
		restore(&verbose), restore(&quiet),
		restore(&generateDryRun), restore(&generateInclude), restore(&generateExclude),
		restore(&diffFailOnBreaking),
		restore(&checkStrict), restore(&checkIgnore), restore(&checkCI),
		restore(&watchDebounce), restore(&serveAddress),
		restore(&initForce), restore(&initInteractive), restore(&initTitle),
	}
	t.Cleanup(func() {
		for _, fn := range saved {
			fn()
		}
	})

	cfgFile, output, format, flavor = "", "", "", ""
	verbose, quiet = false, true
	generateDryRun, generateInclude, generateExclude = false, nil, nil
	diffFailOnBreaking = false
	checkStrict, checkIgnore, checkCI = true, nil, false
	watchDebounce, serveAddress = 0, ""
	initForce, initInteractive, initTitle = false, false, ""
}

func restore[T any](v *T) func() {
	old := *v
	return func() { *v = old }
}

func TestRootCommand_Help(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "routedoc")
	assert.Contains(t, output, "synthesizes an OpenAPI 3 document")
	assert.Contains(t, output, "Available Commands")
	for _, name := range []string{"generate", "init", "check", "diff", "watch", "print", "serve", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		expected string
	}{
		{"config flag short", "-c", "config file"},
		{"config flag long", "--config", "config file"},
		{"output flag short", "-o", "output file path"},
		{"output flag long", "--output", "output file path"},
		{"format flag short", "-f", "output format"},
		{"format flag long", "--format", "output format"},
		{"flavor flag", "--flavor", "return type unwrapping"},
		{"verbose flag short", "-v", "verbose output"},
		{"verbose flag long", "--verbose", "verbose output"},
		{"quiet flag short", "-q", "suppress"},
		{"quiet flag long", "--quiet", "suppress"},
	}

	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, output, tt.flag)
			assert.Contains(t, output, tt.expected)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)

	assert.Contains(t, output, "routedoc")
	assert.Contains(t, output, "Commit")
	assert.Contains(t, output, "Build Date")
	assert.Contains(t, output, "Go Version")
	assert.Contains(t, output, "OS/Arch")
}

func TestCommand_Help(t *testing.T) {
	tests := []struct {
		command  string
		contains []string
	}{
		{"init", []string{"Initialize a new routedoc configuration file", "--force", "--interactive"}},
		{"generate", []string{"Generate an OpenAPI document", "--dry-run", "--include", "--exclude"}},
		{"check", []string{"Check validates that your OpenAPI document", "--strict", "--ignore", "--ci"}},
		{"diff", []string{"Compare two OpenAPI documents", "--fail-on-breaking"}},
		{"watch", []string{"Watch for manifest changes", "--debounce"}},
		{"print", []string{"Print the OpenAPI document"}},
		{"serve", []string{"Serve the OpenAPI document over HTTP", "--address"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			output, err := executeCommand(rootCmd, tt.command, "--help")
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Contains(t, info, "routedoc")
	assert.Contains(t, info, "commit")
	assert.Contains(t, info, "built")
}

func TestLoadConfig_Overrides(t *testing.T) {
	setupProject(t, nil)
	output, format, flavor = "out/api.json", "json", "reactive"

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "out/api.json", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "reactive", cfg.Generation.Flavor)
	assert.Equal(t, []string{"stdin"}, sourcePaths(cfg, []string{"stdin"}))
	assert.Equal(t, []string{"."}, sourcePaths(cfg, nil))
}

func TestLoadConfig_Invalid(t *testing.T) {
	setupProject(t, nil)
	flavor = "webflux"

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestExitError(t *testing.T) {
	cause := errors.New("document differs")
	err := error(&ExitError{Code: ExitCodeDifference, Err: cause})

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "document differs", err.Error())
	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}
