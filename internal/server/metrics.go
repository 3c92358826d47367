package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/netfog/pkg/observability"
)

const (
	labelFormat  = "format"
	labelStatus  = "status"
	labelKeyType = "key_type"
	labelResult  = "result"
	labelEvent   = "type"
)

// Metrics exposes server activity to Prometheus. It implements the
// observability hooks so the pipeline and cache report into it.
type Metrics struct {
	registry *prometheus.Registry

	renders         *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	exports         *prometheus.CounterVec
	cacheOps        *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	sessionDuration prometheus.Histogram
	events          *prometheus.CounterVec
	reloads         prometheus.Counter
}

var (
	_ observability.RenderHooks  = (*Metrics)(nil)
	_ observability.CacheHooks   = (*Metrics)(nil)
	_ observability.SessionHooks = (*Metrics)(nil)
)

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netfog_renders_total",
			Help: "The number of rendered artifacts",
		}, []string{labelFormat, labelStatus}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "netfog_render_duration_seconds",
			Help:    "Time spent rendering artifacts, cache lookups included",
			Buckets: prometheus.DefBuckets,
		}, []string{labelFormat}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netfog_exports_total",
			Help: "The number of network exports",
		}, []string{labelFormat, labelStatus}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netfog_cache_operations_total",
			Help: "Cache lookups and writes",
		}, []string{labelKeyType, labelResult}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netfog_active_sessions",
			Help: "The number of open live editor sessions",
		}),
		sessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "netfog_session_duration_seconds",
			Help:    "Lifetime of live editor sessions",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netfog_session_events_total",
			Help: "Client events processed by live sessions",
		}, []string{labelEvent}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netfog_reloads_total",
			Help: "The number of input reloads triggered by the file watcher",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.renders, m.renderDuration, m.exports, m.cacheOps,
		m.activeSessions, m.sessionDuration, m.events, m.reloads,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
	observability.SetSessionHooks(m)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnRender(_ context.Context, format string, d time.Duration, err error) {
	m.renders.WithLabelValues(format, status(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnExport(_ context.Context, format string, err error) {
	m.exports.WithLabelValues(format, status(err)).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnSessionOpen(context.Context, string) {
	m.activeSessions.Inc()
}

func (m *Metrics) OnSessionClose(_ context.Context, _ string, d time.Duration) {
	m.activeSessions.Dec()
	m.sessionDuration.Observe(d.Seconds())
}

func (m *Metrics) OnEvent(_ context.Context, kind string) {
	m.events.WithLabelValues(kind).Inc()
}
