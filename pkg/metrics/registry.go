// Package metrics implements the observability hooks on top of a private
// Prometheus registry.
//
// A [Registry] satisfies both [observability.LayoutHooks] and
// [observability.CacheHooks]. The CLI registers one at startup and, when
// asked, dumps it in the text exposition format with [Registry.WriteFile].
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/bpmnlayout/pkg/observability"
)

// Registry holds all metrics for a bpmnlayout process.
type Registry struct {
	// Layout Metrics
	LayoutsTotal    *prometheus.CounterVec
	LayoutDuration  prometheus.Histogram
	LayoutNodes     prometheus.Histogram
	LayoutEdges     prometheus.Histogram
	LayoutRanks     prometheus.Histogram
	LayoutsInFlight prometheus.Gauge
	RendersTotal    *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal    *prometheus.CounterVec
	CacheMissesTotal  *prometheus.CounterVec
	CacheWritesTotal  *prometheus.CounterVec
	CacheWrittenBytes *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	_ observability.LayoutHooks = (*Registry)(nil)
	_ observability.CacheHooks  = (*Registry)(nil)
)

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initLayoutMetrics()
	r.initCacheMetrics()
	return r
}

// Gatherer returns the underlying Prometheus registry.
func (r *Registry) Gatherer() *prometheus.Registry {
	return r.registry
}
