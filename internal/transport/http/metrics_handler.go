package http

import (
	"net/http"

	"aipulse/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	metrics *infrastructure.Metrics
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(metrics *infrastructure.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Handler returns the Prometheus exposition handler for GET /metrics.
func (h *MetricsHandler) Handler() http.Handler {
	return h.metrics.Handler()
}
