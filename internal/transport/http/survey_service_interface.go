package http

import (
	"context"

	"aipulse/internal/dataprocessing"
	"aipulse/internal/services"
	"aipulse/pkg/contracts/domain"
)

// SurveyServiceInterface defines the survey operations the handler depends
// on. Tests substitute a stub implementation.
type SurveyServiceInterface interface {
	Status(ctx context.Context) services.LoadStatus
	Overview(ctx context.Context, function string) dataprocessing.OverviewMetrics
	Breakdown(ctx context.Context) []dataprocessing.FunctionStats
	Functions(ctx context.Context) []string
	Tally(ctx context.Context, field, function string, limit int) ([]dataprocessing.TallyEntry, error)
	Distribution(ctx context.Context, field, function string) ([]dataprocessing.TallyEntry, error)
	Histogram(ctx context.Context, function string) []dataprocessing.HistogramBin
	Savings(ctx context.Context, rate float64) (services.SavingsReport, error)
	Responses(ctx context.Context, function string) []domain.Response
	InvalidateCache()
}
