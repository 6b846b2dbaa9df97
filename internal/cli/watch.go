// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/openapi"
	"github.com/api2spec/routedoc/internal/scanner"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch route manifests and regenerate the document",
	Long: `Watch for manifest changes and automatically regenerate the OpenAPI
document.

Every change starts a new document lifetime: the manifests are reloaded
and a fresh computation pass runs, so the output never mixes routes from
two versions of the manifests. Changes arriving within the debounce
window are coalesced into one regeneration.

Example:
  routedoc watch                          # Watch current directory
  routedoc watch ./api ./admin            # Watch specific paths
  routedoc watch --debounce 1000          # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := sourcePaths(cfg, args)

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newManifestWatcher(cfg, paths, func() error { return regenerate(cfg, paths) })
	if err != nil {
		return err
	}
	defer w.Close()

	if err := regenerate(cfg, paths); err != nil {
		printError("%v", err)
	}

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	return w.Run(ctx)
}

// regenerate runs a pass on a new resource and rewrites the output.
func regenerate(cfg *config.Config, paths []string) error {
	doc, err := newResource(cfg, paths).Document()
	if err != nil {
		return err
	}
	if err := openapi.WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	printInfo("Regenerated %s (%d paths)", cfg.Output, len(doc.Paths))
	return nil
}

// manifestWatcher calls onChange once per burst of manifest events.
type manifestWatcher struct {
	fs       *fsnotify.Watcher
	scanner  *scanner.Scanner
	debounce time.Duration
	onChange func() error
	logger   *slog.Logger
}

func newManifestWatcher(cfg *config.Config, paths []string, onChange func() error) (*manifestWatcher, error) {
	s := newScanner(cfg)
	dirs, err := s.Dirs(paths)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &manifestWatcher{
		fs:       fw,
		scanner:  s,
		debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
		onChange: onChange,
		logger:   newLogger(),
	}, nil
}

// Run processes events until ctx is done.
func (w *manifestWatcher) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("manifest changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			if err := w.onChange(); err != nil {
				w.logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// relevant reports whether event affects a manifest. New directories are
// added to the watch and count as a change.
func (w *manifestWatcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fs.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch directory", "path", event.Name, "error", err)
			}
			return true
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	return w.scanner.Matches(event.Name)
}

// Close stops watching.
func (w *manifestWatcher) Close() error {
	return w.fs.Close()
}
