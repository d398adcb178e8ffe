// Package metrics provides Prometheus metrics for the news service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aihub"

// Source fetch outcomes.
const (
	ResultOK         = "ok"
	ResultEmpty      = "empty"
	ResultFetchError = "fetch_error"
	ResultParseError = "parse_error"
	ResultPanic      = "panic"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics groups the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	SourceFetches       *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	EntriesSkipped      *prometheus.CounterVec
	SourcesUp           *prometheus.GaugeVec
	Fallbacks           *prometheus.CounterVec
	FilterRelaxations   *prometheus.CounterVec
	CacheRequests       *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	TasksProcessed      *prometheus.CounterVec
	TaskQueueDepth      prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// SourceFetches counts fetch+parse attempts per source and outcome.
		SourceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_fetch_total",
				Help:      "Total number of feed source fetches",
			},
			[]string{"source", "result"},
		),

		SourceFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_fetch_duration_seconds",
				Help:      "Duration of feed source fetches in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9),
			},
			[]string{"source"},
		),

		EntriesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_skipped_total",
				Help:      "Total number of feed entries that could not be normalized",
			},
			[]string{"source"},
		),

		SourcesUp: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "source_up",
				Help:      "Whether the last probe of a source returned entries (1 = yes, 0 = no)",
			},
			[]string{"source"},
		),

		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "news_fallback_total",
				Help:      "Total number of responses served from fallback content",
			},
			[]string{"operation"},
		),

		FilterRelaxations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "news_filter_relaxed_total",
				Help:      "Total number of category filters dropped for returning too few items",
			},
			[]string{"operation"},
		),

		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Total number of result cache lookups",
			},
			[]string{"operation", "result"},
		),

		AggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "news_aggregation_duration_seconds",
				Help:      "Duration of uncached news aggregations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		TasksProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_processed_total",
				Help:      "Total number of background tasks processed",
			},
			[]string{"type", "status"},
		),

		TaskQueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "task_queue_depth",
				Help:      "Number of background tasks waiting in the queue",
			},
		),
	}
}

// RecordSourceFetch records one source fetch.
func (m *Metrics) RecordSourceFetch(source, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SourceFetches.WithLabelValues(source, result).Inc()
	m.SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *Metrics) RecordEntrySkipped(source string) {
	if m == nil {
		return
	}
	m.EntriesSkipped.WithLabelValues(source).Inc()
}

// RecordSourceStatus stores the outcome of a source probe.
func (m *Metrics) RecordSourceStatus(status map[string]bool) {
	if m == nil {
		return
	}
	for source, up := range status {
		value := 0.0
		if up {
			value = 1
		}
		m.SourcesUp.WithLabelValues(source).Set(value)
	}
}

func (m *Metrics) RecordFallback(operation string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordFilterRelaxed(operation string) {
	if m == nil {
		return
	}
	m.FilterRelaxations.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordCache(operation, result string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) RecordAggregation(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AggregationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordTask(taskType, status string) {
	if m == nil {
		return
	}
	m.TasksProcessed.WithLabelValues(taskType, status).Inc()
}

func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.TaskQueueDepth.Set(float64(depth))
}
