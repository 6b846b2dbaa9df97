// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package metrics exposes Prometheus metrics for document computation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pass outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the document computation metrics.
type Metrics struct {
	Passes       *prometheus.CounterVec
	PassDuration prometheus.Histogram
	Routes       prometheus.Counter
	CacheHits    prometheus.Counter
	Schemas      prometheus.Gauge
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routedoc",
				Subsystem: "document",
				Name:      "passes_total",
				Help:      "Total number of document computation passes",
			},
			[]string{"status"},
		),

		PassDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "routedoc",
				Subsystem: "document",
				Name:      "pass_duration_seconds",
				Help:      "Document computation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		Routes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "routedoc",
				Subsystem: "document",
				Name:      "routes_processed_total",
				Help:      "Total number of (path, verb) merges performed",
			},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "routedoc",
				Subsystem: "document",
				Name:      "cache_hits_total",
				Help:      "Total number of document requests served from cache",
			},
		),

		Schemas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "routedoc",
				Subsystem: "document",
				Name:      "schemas",
				Help:      "Number of component schemas in the last computed document",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Passes, m.PassDuration, m.Routes, m.CacheHits, m.Schemas)
	}
	return m
}

// RecordPass records a finished pass.
func (m *Metrics) RecordPass(err error, duration time.Duration, routes, schemas int) {
	if m == nil {
		return
	}
	if err != nil {
		m.Passes.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.Passes.WithLabelValues(StatusSuccess).Inc()
	m.PassDuration.Observe(duration.Seconds())
	m.Routes.Add(float64(routes))
	m.Schemas.Set(float64(schemas))
}

// RecordCacheHit increments the cache hit counter
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}
