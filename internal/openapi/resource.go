// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api2spec/routedoc/internal/config"
	"github.com/api2spec/routedoc/internal/metadata"
	"github.com/api2spec/routedoc/internal/metrics"
	"github.com/api2spec/routedoc/internal/schema"
	"github.com/api2spec/routedoc/pkg/types"
)

// ErrComputation is returned when a computation pass aborts.
var ErrComputation = errors.New("document computation failed")

// Resource owns one document lifetime: the first successful pass is cached
// and returned by every later call.
type Resource struct {
	mu  sync.Mutex
	doc *types.OpenAPI

	config      *config.Config
	source      metadata.Source
	extractor   metadata.Extractor
	rules       []schema.UnwrapRule
	customizers []Customizer
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a Resource.
type Option func(*Resource)

// WithExtractor replaces the default documentation extractor.
func WithExtractor(e metadata.Extractor) Option {
	return func(r *Resource) { r.extractor = e }
}

// WithRules replaces the unwrap rules selected by the configured flavor.
func WithRules(rules ...schema.UnwrapRule) Option {
	return func(r *Resource) { r.rules = rules }
}

// WithCustomizers appends customizers, run after the configured ones.
func WithCustomizers(c ...Customizer) Option {
	return func(r *Resource) { r.customizers = append(r.customizers, c...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resource) { r.logger = l }
}

// WithMetrics records pass metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resource) { r.metrics = m }
}

// NewResource creates a resource reading route metadata from source.
func NewResource(cfg *config.Config, source metadata.Source, opts ...Option) *Resource {
	r := &Resource{
		config:    cfg,
		source:    source,
		extractor: metadata.NewAnnotationExtractor(),
		rules:     schema.RulesFor(cfg.Generation.Flavor),
		logger:    slog.Default(),
	}
	if cfg.Generation.SortTags {
		r.customizers = append(r.customizers, SortTags())
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the document, computing it on first use. Concurrent
// callers wait for the pass in progress. A failed pass leaves nothing
// cached, so the next call starts over.
func (r *Resource) Document() (*types.OpenAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc != nil {
		r.metrics.RecordCacheHit()
		return r.doc, nil
	}

	passID := uuid.NewString()
	start := time.Now()
	doc, merged, err := r.compute()
	duration := time.Since(start)

	schemas := 0
	if doc != nil && doc.Components != nil {
		schemas = len(doc.Components.Schemas)
	}
	r.metrics.RecordPass(err, duration, merged, schemas)

	if err != nil {
		r.logger.Error("document computation failed", "pass_id", passID, "error", err)
		return nil, err
	}

	r.doc = doc
	r.logger.Info("document computed",
		"pass_id", passID,
		"duration_ms", duration.Milliseconds(),
		"paths", len(doc.Paths),
		"schemas", schemas,
	)
	return doc, nil
}

// compute runs one full pass on a fresh document.
func (r *Resource) compute() (doc *types.OpenAPI, merged int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("%w: panic: %v", ErrComputation, rec)
		}
	}()

	reg, err := r.source.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: loading routes: %w", ErrComputation, err)
	}

	doc = types.NewDocument(r.config.OpenAPI.Version)
	resolver := schema.NewResolver(schema.NewRegistry(), schema.NewModelConverter(reg.Models), r.rules)
	merger := NewPathMerger(doc, r.config, r.extractor, resolver)

	merger.Info().Build(doc)
	merger.Responses().BuildGenericResponses(reg.Advice, r.config.Generation.DefaultProduces)
	if err := merger.MergeRoutes(reg.Routes); err != nil {
		return nil, merger.Merged(), fmt.Errorf("%w: %w", ErrComputation, err)
	}
	resolver.Registry().CopyTo(doc.Components)

	for i, c := range r.customizers {
		if err := c.Customize(doc); err != nil {
			return nil, merger.Merged(), fmt.Errorf("%w: customizer %d: %w", ErrComputation, i, err)
		}
	}
	return doc, merger.Merged(), nil
}
