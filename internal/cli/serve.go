// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metrics"
	"github.com/api2spec/routedoc/internal/openapi"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve [paths...]",
	Short: "Serve the OpenAPI document over HTTP",
	Long: `Serve the OpenAPI document over HTTP.

The document is computed on the first request and cached for the life of
the process. A pass that fails answers 500 and is retried on the next
request. Pass metrics are exposed in the Prometheus format.

Endpoints (paths configurable under serve):
  GET /v3/api-docs        JSON document
  GET /v3/api-docs.yaml   YAML document
  GET /metrics            Prometheus metrics
  GET /health             Liveness

Example:
  routedoc serve                          # Listen on serve.address
  routedoc serve --address :9000 ./api    # Custom address and manifests`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default: serve.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddress != "" {
		cfg.Serve.Address = serveAddress
	}

	logger := newLogger()
	registry := prometheus.NewRegistry()
	resource := newResource(cfg, sourcePaths(cfg, args), openapi.WithMetrics(metrics.New(registry)))

	server := &http.Server{
		Addr:              cfg.Serve.Address,
		Handler:           newServeRouter(cfg, resource, registry, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving document", "address", cfg.Serve.Address, "path", cfg.Serve.DocsPath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newServeRouter routes the document, metrics and health endpoints.
func newServeRouter(cfg *config.Config, resource *openapi.Resource, registry *prometheus.Registry, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	serveDoc := func(contentType, format string) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			doc, err := resource.Document()
			if err != nil {
				logger.Error("document unavailable",
					"request_id", middleware.GetReqID(req.Context()),
					"error", err,
				)
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			w.Header().Set("Content-Type", contentType)
			if err := openapi.Encode(doc, format, w); err != nil {
				logger.Error("failed to write document", "error", err)
			}
		}
	}

	docsPath := cfg.Serve.DocsPath
	if docsPath == "" {
		docsPath = config.Default().Serve.DocsPath
	}
	r.Get(docsPath, serveDoc("application/json", "json"))
	r.Get(docsPath+".yaml", serveDoc("application/yaml", "yaml"))
	if cfg.Serve.MetricsPath != "" {
		r.Handle(cfg.Serve.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	}
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
