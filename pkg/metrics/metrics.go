package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records outbound API request outcomes.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewRequestMetrics registers the request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "client_request_duration_seconds",
		Help:    "Duration of outbound API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "client_requests_total",
		Help: "Outbound API requests by resource and outcome.",
	}, []string{"resource", "outcome"})
	reg.MustRegister(duration, total)
	return &RequestMetrics{
		duration: duration,
		total:    total,
	}
}

// ObserveDuration records the duration of a call against the named resource.
func (m *RequestMetrics) ObserveDuration(resource string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(resource)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named resource.
func (m *RequestMetrics) IncSuccess(resource string) {
	if m == nil || m.total == nil {
		return
	}
	m.total.WithLabelValues(normalizeLabel(resource), "success").Inc()
}

// IncFailure increments the failure counter for the named resource.
func (m *RequestMetrics) IncFailure(resource string) {
	if m == nil || m.total == nil {
		return
	}
	m.total.WithLabelValues(normalizeLabel(resource), "failure").Inc()
}

func normalizeLabel(resource string) string {
	if resource == "" {
		return "unknown"
	}
	return resource
}
