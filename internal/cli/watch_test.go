// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/openapi"
)

func TestRegenerate_WritesOutput(t *testing.T) {
	dir := setupProject(t, map[string]string{"widgets.routes.yaml": widgetManifest})
	cfg := config.Default()
	cfg.Output = "docs/openapi.json"
	cfg.Format = "json"

	require.NoError(t, regenerate(cfg, cfg.Source.Paths))

	doc, err := openapi.ReadFile(filepath.Join(dir, "docs", "openapi.json"))
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 2)
}

func TestManifestWatcher_DebouncesChanges(t *testing.T) {
	dir := setupProject(t, map[string]string{"api/widgets.routes.yaml": widgetManifest})
	cfg := config.Default()
	cfg.Watch.Debounce = 100

	changes := make(chan struct{}, 10)
	w, err := newManifestWatcher(cfg, cfg.Source.Paths, func() error {
		changes <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Non-manifest files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "notes.txt"), []byte("x"), 0o644))
	select {
	case <-changes:
		t.Fatal("unexpected regeneration for a non-manifest file")
	case <-time.After(400 * time.Millisecond):
	}

	// A burst of writes yields one regeneration.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "gadgets.routes.yaml"), []byte(gadgetManifest), 0o644))
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after manifest change")
	}
	select {
	case <-changes:
		t.Fatal("burst produced more than one regeneration")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestManifestWatcher_NewDirectory(t *testing.T) {
	dir := setupProject(t, nil)
	cfg := config.Default()
	cfg.Watch.Debounce = 50

	changes := make(chan struct{}, 10)
	w, err := newManifestWatcher(cfg, cfg.Source.Paths, func() error {
		changes <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "admin"), 0o755))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after directory creation")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin", "admin.routes.yaml"), []byte(gadgetManifest), 0o644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("new directory is not watched")
	}
}
