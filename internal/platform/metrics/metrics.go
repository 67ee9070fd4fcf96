package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RateLimitRemaining prometheus.Gauge
	RateLimitWarnings  prometheus.Counter
	APIOnline          prometheus.Gauge
	AuthFailures       prometheus.Counter
	UsersRegistered    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lycosidae_requests_total",
			Help: "Total number of API requests, labeled by method and outcome",
		}, []string{"method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lycosidae_request_duration_seconds",
			Help:    "Latency of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RateLimitRemaining: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lycosidae_rate_limit_remaining",
			Help: "Remaining requests reported by the last X-RateLimit-Remaining header",
		}),
		RateLimitWarnings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lycosidae_rate_limit_warnings_total",
			Help: "Total number of rate limit warnings emitted",
		}),
		APIOnline: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lycosidae_api_online",
			Help: "Whether the last health check succeeded (1) or failed (0)",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lycosidae_auth_failures_total",
			Help: "Total number of failed register/login attempts",
		}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lycosidae_users_registered_total",
			Help: "Total number of successful registrations",
		}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method, status, endpoint string, durationSeconds float64) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// SetRateLimitRemaining updates the remaining-quota gauge.
func (m *Metrics) SetRateLimitRemaining(remaining int) {
	m.RateLimitRemaining.Set(float64(remaining))
}

// IncrementRateLimitWarnings increments the warning counter by 1.
func (m *Metrics) IncrementRateLimitWarnings() {
	m.RateLimitWarnings.Inc()
}

// SetAPIOnline records the outcome of the latest health check.
func (m *Metrics) SetAPIOnline(online bool) {
	if online {
		m.APIOnline.Set(1)
		return
	}
	m.APIOnline.Set(0)
}

// IncrementAuthFailures increments the auth failure counter by 1.
func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

// IncrementUsersRegistered increments the registration counter by 1.
func (m *Metrics) IncrementUsersRegistered() {
	m.UsersRegistered.Inc()
}
