// Package metrics provides Prometheus metrics for provider lookups and the status cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Provider calls
	LookupsTotal          *prometheus.CounterVec   // by provider, method, outcome (ok|failed)
	LookupFailuresTotal   *prometheus.CounterVec   // by provider, error category
	LookupDurationSeconds *prometheus.HistogramVec // by provider

	// Status cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Lookup events that could not be published
	EventPublishFailuresTotal prometheus.Counter
}

// New registers the metrics with reg (prometheus.DefaultRegisterer in production).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninlookup_provider_lookups_total",
			Help: "Total provider lookups by provider, method and outcome",
		}, []string{"provider", "method", "outcome"}),

		LookupFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninlookup_provider_failures_total",
			Help: "Failed provider lookups by provider and error category",
		}, []string{"provider", "category"}),

		LookupDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ninlookup_provider_lookup_duration_seconds",
			Help:    "Duration of provider lookups",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),

		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_status_cache_hits_total",
			Help: "Status queries answered from the cache",
		}),

		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_status_cache_misses_total",
			Help: "Status queries that fell through to the store",
		}),

		EventPublishFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_event_publish_failures_total",
			Help: "Lookup-completed events that could not be published",
		}),
	}
}

// ObserveLookup records one provider call. category is empty for successes.
func (m *Metrics) ObserveLookup(provider, method string, ok bool, category string, durationSeconds float64) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
		m.LookupFailuresTotal.WithLabelValues(provider, category).Inc()
	}
	m.LookupsTotal.WithLabelValues(provider, method, outcome).Inc()
	m.LookupDurationSeconds.WithLabelValues(provider).Observe(durationSeconds)
}

func (m *Metrics) RecordCacheHit()  { m.CacheHitsTotal.Inc() }
func (m *Metrics) RecordCacheMiss() { m.CacheMissesTotal.Inc() }

func (m *Metrics) RecordEventPublishFailure() { m.EventPublishFailuresTotal.Inc() }
