package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are labelled by chi route pattern, never by raw path.
type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ninlookup_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninlookup_http_requests_total",
			Help: "HTTP requests by endpoint and status code",
		}, []string{"endpoint", "code"}),
	}
}

// ObserveRequest records latency and the answered status for one request.
func (m *Metrics) ObserveRequest(endpoint string, status int, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
	m.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}
