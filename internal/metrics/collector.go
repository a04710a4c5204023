// Package metrics implements Prometheus metrics collection for invocation
// handling.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the invocation counter.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Collector tracks per-invocation metrics. A disabled collector is a no-op
// so callers never need to nil-check individual metrics.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	invocationCounter  *prometheus.CounterVec
	invocationDuration prometheus.Histogram
	responseSize       prometheus.Histogram
	errorCounter       *prometheus.CounterVec
}

// Config represents metrics configuration.
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// NewCollector creates a new metrics collector.
func NewCollector(config *Config) (*Collector, error) {
	if config == nil {
		config = &Config{
			Enabled:   true,
			Namespace: "lambdabridge",
		}
	}

	if !config.Enabled {
		return &Collector{config: config}, nil
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		config:   config,
		registry: registry,
		invocationCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "invocations_total",
			Help:      "Total invocations handled, by outcome",
		}, []string{"outcome"}),
		invocationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "invocation_duration_seconds",
			Help:      "End-to-end invocation handling duration",
			Buckets:   prometheus.DefBuckets,
		}),
		responseSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "response_body_bytes",
			Help:      "Size of materialized response bodies",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
		errorCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "errors_total",
			Help:      "Structured errors observed, by code",
		}, []string{"code"}),
	}

	for _, c := range []prometheus.Collector{
		collector.invocationCounter,
		collector.invocationDuration,
		collector.responseSize,
		collector.errorCounter,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return collector, nil
}

// Enabled reports whether metrics collection is active.
func (c *Collector) Enabled() bool {
	return c != nil && c.config != nil && c.config.Enabled
}

// Registry returns the Prometheus registry for scraping, or nil when the
// collector is disabled.
func (c *Collector) Registry() *prometheus.Registry {
	if !c.Enabled() {
		return nil
	}
	return c.registry
}

// RecordInvocation records one completed invocation.
func (c *Collector) RecordInvocation(outcome string, duration time.Duration, responseBytes int) {
	if !c.Enabled() {
		return
	}
	c.invocationCounter.WithLabelValues(outcome).Inc()
	c.invocationDuration.Observe(duration.Seconds())
	c.responseSize.Observe(float64(responseBytes))
}

// RecordError records one structured error by code.
func (c *Collector) RecordError(code string) {
	if !c.Enabled() {
		return
	}
	c.errorCounter.WithLabelValues(code).Inc()
}
