// Package telemetry provides OpenTelemetry instrumentation for the VOC
// insight service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "voc-insight"

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	// Load cycle metrics
	LoadDuration   prometheus.Histogram
	RowsLoaded     prometheus.Gauge
	RowsDropped    *prometheus.CounterVec
	LoadFailures   *prometheus.CounterVec
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheRefreshes prometheus.Counter

	// Classification metrics
	RecordsClassified *prometheus.CounterVec // by game
	SentimentTotal    *prometheus.CounterVec // by sentiment

	// Query metrics
	FilterDuration prometheus.Histogram
	SearchTotal    prometheus.Counter
	EmptyResults   *prometheus.CounterVec // by warning kind

	// Archive metrics
	ArchiveIndexed prometheus.Counter
	ArchiveErrors  prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

// StartSpan starts a trace span; safe to call on a nil provider.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// ObserveLoad records one completed load cycle; safe on a nil provider.
func (p *Provider) ObserveLoad(duration time.Duration, rows int) {
	if p == nil {
		return
	}
	p.Metrics.LoadDuration.Observe(duration.Seconds())
	p.Metrics.RowsLoaded.Set(float64(rows))
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initLoadMetrics(m)
	initClassificationMetrics(m)
	initQueryMetrics(m)
	initArchiveMetrics(m)
	return m
}

func initLoadMetrics(m *Metrics) {
	m.LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voc_load_duration_seconds",
		Help:    "Time to load and normalize the full VOC table",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	m.RowsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voc_rows_loaded",
		Help: "Normalized records in the current table",
	})

	m.RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voc_rows_dropped_total",
		Help: "Raw rows dropped during normalization",
	}, []string{"reason"})

	m.LoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voc_load_failures_total",
		Help: "Load cycles that ended in a recoverable failure",
	}, []string{"kind"})

	m.CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_cache_hits_total",
		Help: "Table reads served from the TTL cache",
	})

	m.CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_cache_misses_total",
		Help: "Table reads that triggered a reload",
	})

	m.CacheRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_cache_refreshes_total",
		Help: "Background refresher runs",
	})
}

func initClassificationMetrics(m *Metrics) {
	m.RecordsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voc_records_classified_total",
		Help: "Records classified, labeled by game",
	}, []string{"game"})

	m.SentimentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voc_sentiment_total",
		Help: "Records classified, labeled by sentiment",
	}, []string{"sentiment"})
}

func initQueryMetrics(m *Metrics) {
	m.FilterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voc_filter_duration_seconds",
		Help:    "Time to filter the normalized table",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	m.SearchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_search_total",
		Help: "Keyword searches executed",
	})

	m.EmptyResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voc_empty_results_total",
		Help: "Queries that returned empty results, labeled by warning kind",
	}, []string{"warning"})
}

func initArchiveMetrics(m *Metrics) {
	m.ArchiveIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_archive_indexed_total",
		Help: "Records bulk-indexed into the Elasticsearch archive",
	})

	m.ArchiveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voc_archive_errors_total",
		Help: "Archive indexing failures",
	})
}
