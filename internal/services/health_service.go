package services

import (
	"context"
	"log/slog"
	"time"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// HealthService provides liveness, readiness, and version reporting.
type HealthService struct {
	survey    *SurveyService
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthService creates a health service backed by the survey service.
func NewHealthService(survey *SurveyService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		survey:    survey,
		logger:    logger.With(slog.String("component", "health_service")),
		startTime: time.Now(),
	}
}

// HealthCheck reports basic process health.
func (h *HealthService) HealthCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(h.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}
}

// ReadinessCheck reports whether the service can serve survey data.
// The service is degraded (but alive) when the survey file cannot load.
func (h *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	status := h.survey.Status(ctx)

	state := "ready"
	if !status.Loaded {
		state = "degraded"
		h.logger.WarnContext(ctx, "readiness degraded: survey file not loadable",
			slog.String("path", status.Path),
			slog.String("error", status.Error))
	}

	return map[string]interface{}{
		"status": state,
		"survey": status,
	}
}

// LivenessCheck reports that the process is responsive.
func (h *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{"status": "alive"}
}

// VersionInfo returns build version information.
func (h *HealthService) VersionInfo() map[string]interface{} {
	return map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
	}
}
