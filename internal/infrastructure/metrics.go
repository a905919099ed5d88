package infrastructure

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the dashboard service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	surveyLoads     prometheus.Counter
	surveyLoadFails prometheus.Counter
	responsesLoaded prometheus.Gauge
}

// NewMetrics creates the metric set on its own registry, keeping the
// default Go collector noise out of the scrape output.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aipulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by path and status",
		}, []string{"path", "status"}),
		requestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aipulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		surveyLoads: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "aipulse",
			Subsystem: "survey",
			Name:      "loads_total",
			Help:      "Total number of survey file load attempts; cache hits are not counted",
		}),
		surveyLoadFails: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "aipulse",
			Subsystem: "survey",
			Name:      "load_failures_total",
			Help:      "Total number of failed survey file loads",
		}),
		responsesLoaded: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: "aipulse",
			Subsystem: "survey",
			Name:      "responses_loaded",
			Help:      "Number of responses in the most recently loaded table",
		}),
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(path, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(path, status).Inc()
	m.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// ObserveSurveyLoad records the outcome of one actual survey file load
// attempt. Callers hook it up as the table cache's load observer, so reads
// served from cache never reach it.
func (m *Metrics) ObserveSurveyLoad(responses int, err error) {
	m.surveyLoads.Inc()
	if err != nil {
		m.surveyLoadFails.Inc()
		return
	}
	m.responsesLoaded.Set(float64(responses))
}

// SurveyLoads returns the load-attempt counter.
func (m *Metrics) SurveyLoads() prometheus.Counter { return m.surveyLoads }

// SurveyLoadFails returns the failed-load counter.
func (m *Metrics) SurveyLoadFails() prometheus.Counter { return m.surveyLoadFails }

// ResponsesLoaded returns the loaded-responses gauge.
func (m *Metrics) ResponsesLoaded() prometheus.Gauge { return m.responsesLoaded }

// Handler returns the /metrics scrape handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
