package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnLayoutStart counts an in-flight layout and records the input size.
func (r *Registry) OnLayoutStart(_ context.Context, nodes, edges int) {
	r.LayoutsInFlight.Inc()
	r.LayoutNodes.Observe(float64(nodes))
	r.LayoutEdges.Observe(float64(edges))
}

// OnLayoutComplete records the outcome of a layout. Ranks are only observed
// for successful runs.
func (r *Registry) OnLayoutComplete(_ context.Context, ranks int, duration time.Duration, err error) {
	r.LayoutsInFlight.Dec()
	r.LayoutsTotal.WithLabelValues(status(err)).Inc()
	r.LayoutDuration.Observe(duration.Seconds())
	if err == nil {
		r.LayoutRanks.Observe(float64(ranks))
	}
}

func (r *Registry) OnRenderStart(context.Context, string) {}

func (r *Registry) OnRenderComplete(_ context.Context, format string, duration time.Duration, err error) {
	r.RendersTotal.WithLabelValues(format, status(err)).Inc()
	r.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWritesTotal.WithLabelValues(keyType).Inc()
	r.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

// WriteFile writes every metric to path in the Prometheus text format, in a
// form suitable for the node exporter's textfile collector.
func (r *Registry) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
