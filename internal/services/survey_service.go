package services

import (
	"context"
	"fmt"
	"log/slog"

	"aipulse/internal/config"
	"aipulse/internal/dataprocessing"
	"aipulse/internal/infrastructure"
	"aipulse/pkg/contracts/domain"
)

// tallyFields are the multi-valued fields the tally endpoint accepts.
var tallyFields = map[string]bool{
	domain.FieldTopTasks:            true,
	domain.FieldAutomationTools:     true,
	domain.FieldAIToolsUsed:         true,
	domain.FieldChallenges:          true,
	domain.FieldSkillNeeds:          true,
	domain.FieldFuturePossibilities: true,
}

// distributionFields are the categorical fields the distribution endpoint accepts.
var distributionFields = map[string]bool{
	domain.FieldUsageFrequency:   true,
	domain.FieldProficiencyLevel: true,
	domain.FieldUsesAutomation:   true,
	domain.FieldFunction:         true,
}

// LoadStatus reports the outcome of the most recent survey load. A failed
// load is a diagnostic, not a crash: aggregates degrade to the empty table.
type LoadStatus struct {
	Path      string `json:"path"`
	Loaded    bool   `json:"loaded"`
	Responses int    `json:"responses"`
	Error     string `json:"error,omitempty"`
}

// SurveyService provides aggregate views over the cached survey table.
type SurveyService struct {
	config *config.Config
	cache  *dataprocessing.TableCache
	logger *slog.Logger
}

// NewSurveyService creates a survey service with its own loader cache.
// When metrics are provided, actual file loads (cache misses and failures,
// never cache hits) are recorded through the cache's load observer.
func NewSurveyService(cfg *config.Config, metrics *infrastructure.Metrics, logger *slog.Logger) *SurveyService {
	if logger == nil {
		logger = slog.Default()
	}
	loader := dataprocessing.NewLoader(logger)
	cache := dataprocessing.NewTableCache(loader, logger)
	if metrics != nil {
		cache.OnLoad(metrics.ObserveSurveyLoad)
	}
	return &SurveyService{
		config: cfg,
		cache:  cache,
		logger: logger.With(slog.String("component", "survey_service")),
	}
}

// table returns the current survey table, optionally narrowed to a single
// function. A failed load degrades to the empty table; the error is logged
// but aggregation continues.
func (s *SurveyService) table(ctx context.Context, function string) *domain.SurveyTable {
	path := s.config.ResolveResponsesFile()
	table, err := s.cache.Get(ctx, path)
	if err != nil {
		s.logger.WarnContext(ctx, "serving aggregates over empty table",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
	if function != "" {
		return table.FilterFunction(function)
	}
	return table
}

// Status reports whether the survey file loaded and how many responses it
// holds. This is the user-visible diagnostic for an unreadable file.
func (s *SurveyService) Status(ctx context.Context) LoadStatus {
	path := s.config.ResolveResponsesFile()
	table, err := s.cache.Get(ctx, path)

	status := LoadStatus{Path: path, Loaded: err == nil, Responses: table.Len()}
	if err != nil {
		status.Error = err.Error()
	}
	return status
}

// Overview returns the headline metrics, optionally segmented by function.
func (s *SurveyService) Overview(ctx context.Context, function string) dataprocessing.OverviewMetrics {
	return dataprocessing.Overview(s.table(ctx, function))
}

// Breakdown returns the per-function statistics table, sorted by label.
func (s *SurveyService) Breakdown(ctx context.Context) []dataprocessing.FunctionStats {
	return dataprocessing.FunctionBreakdown(s.table(ctx, ""))
}

// Functions returns the distinct function labels present in the table.
func (s *SurveyService) Functions(ctx context.Context) []string {
	return s.table(ctx, "").Functions()
}

// Tally ranks the tokens of a multi-valued field, optionally segmented.
// limit <= 0 falls back to the configured default top-K.
func (s *SurveyService) Tally(ctx context.Context, field, function string, limit int) ([]dataprocessing.TallyEntry, error) {
	if !tallyFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if limit <= 0 {
		limit = s.config.Survey.DefaultTopK
	}
	return dataprocessing.Tally(s.table(ctx, function), field, limit), nil
}

// Distribution counts whole values of a categorical field, optionally segmented.
func (s *SurveyService) Distribution(ctx context.Context, field, function string) ([]dataprocessing.TallyEntry, error) {
	if !distributionFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return dataprocessing.Distribution(s.table(ctx, function), field), nil
}

// Histogram buckets the time-percentage values, optionally segmented.
func (s *SurveyService) Histogram(ctx context.Context, function string) []dataprocessing.HistogramBin {
	return dataprocessing.TimeHistogram(s.table(ctx, function))
}

// SavingsReport bundles the savings model with the projection for one
// automation rate and the per-function potential rows.
type SavingsReport struct {
	Model      dataprocessing.SavingsModel       `json:"model"`
	Projection dataprocessing.SavingsProjection  `json:"projection"`
	ByFunction []dataprocessing.FunctionPotential `json:"by_function"`
}

// Savings computes the time-savings projection for the given automation
// rate (0-100). The rate is the calculator slider made an explicit input.
func (s *SurveyService) Savings(ctx context.Context, rate float64) (SavingsReport, error) {
	if rate < 0 || rate > 100 {
		return SavingsReport{}, fmt.Errorf("%w: %.1f", ErrInvalidRate, rate)
	}

	table := s.table(ctx, "")
	model := dataprocessing.ComputeSavings(table)

	return SavingsReport{
		Model:      model,
		Projection: model.Projection(rate),
		ByFunction: dataprocessing.AutomationPotential(table),
	}, nil
}

// Responses returns the normalized records, optionally segmented by
// function, for the detailed data view.
func (s *SurveyService) Responses(ctx context.Context, function string) []domain.Response {
	table := s.table(ctx, function)
	if table.Responses == nil {
		return []domain.Response{}
	}
	return table.Responses
}

// InvalidateCache drops the cached table so the next call reloads from disk.
func (s *SurveyService) InvalidateCache() {
	s.cache.Invalidate(s.config.ResolveResponsesFile())
}
