package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"aipulse/internal/dataprocessing"
	"aipulse/internal/services"
	"aipulse/pkg/contracts/domain"
)

// SurveyReader is the slice of the survey service the report writer needs.
type SurveyReader interface {
	Overview(ctx context.Context, function string) dataprocessing.OverviewMetrics
	Breakdown(ctx context.Context) []dataprocessing.FunctionStats
	Tally(ctx context.Context, field, function string, limit int) ([]dataprocessing.TallyEntry, error)
	Savings(ctx context.Context, rate float64) (services.SavingsReport, error)
	Responses(ctx context.Context, function string) []domain.Response
}

// Summary is the JSON report header written alongside the CSV files.
type Summary struct {
	ReportID    string                                 `json:"report_id"`
	GeneratedAt string                                 `json:"generated_at"`
	Overview    dataprocessing.OverviewMetrics         `json:"overview"`
	Breakdown   []dataprocessing.FunctionStats         `json:"breakdown"`
	Savings     services.SavingsReport                 `json:"savings"`
	Tallies     map[string][]dataprocessing.TallyEntry `json:"tallies"`
}

// ReportWriter renders survey aggregates into a report directory.
type ReportWriter struct {
	csv     *CSVWriter
	service SurveyReader
	logger  *slog.Logger
}

// NewReportWriter creates a report writer emitting into reportsDir.
func NewReportWriter(reportsDir string, service SurveyReader, logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		csv:     NewCSVWriter(reportsDir),
		service: service,
		logger:  logger.With(slog.String("component", "report_writer")),
	}
}

// tallyReportFields are the multi-valued fields included in a full report.
var tallyReportFields = []string{
	domain.FieldChallenges,
	domain.FieldAIToolsUsed,
	domain.FieldSkillNeeds,
	domain.FieldFuturePossibilities,
}

// WriteAll generates the full report set: breakdown and tally CSVs, the
// normalized responses dump, and a summary JSON. It returns the report ID.
func (w *ReportWriter) WriteAll(ctx context.Context, rate float64) (string, error) {
	reportID := uuid.New().String()
	generatedAt := time.Now().UTC().Format(time.RFC3339)

	w.logger.InfoContext(ctx, "generating survey report",
		slog.String("report_id", reportID),
		slog.Float64("automation_rate", rate))

	if err := w.WriteBreakdown(ctx, "breakdown.csv"); err != nil {
		return "", err
	}

	tallies := make(map[string][]dataprocessing.TallyEntry, len(tallyReportFields))
	for _, field := range tallyReportFields {
		entries, err := w.service.Tally(ctx, field, "", 0)
		if err != nil {
			return "", fmt.Errorf("tally %s: %w", field, err)
		}
		tallies[field] = entries
		if err := w.writeTallyCSV(field, entries); err != nil {
			return "", err
		}
	}

	if err := w.WriteResponses(ctx, "responses.csv"); err != nil {
		return "", err
	}

	savings, err := w.service.Savings(ctx, rate)
	if err != nil {
		return "", fmt.Errorf("compute savings: %w", err)
	}

	summary := Summary{
		ReportID:    reportID,
		GeneratedAt: generatedAt,
		Overview:    w.service.Overview(ctx, ""),
		Breakdown:   w.service.Breakdown(ctx),
		Savings:     savings,
		Tallies:     tallies,
	}
	if err := w.writeSummaryJSON("summary.json", summary); err != nil {
		return "", err
	}

	return reportID, nil
}

// WriteBreakdown writes the per-function breakdown table as CSV.
func (w *ReportWriter) WriteBreakdown(ctx context.Context, filePath string) error {
	breakdown := w.service.Breakdown(ctx)

	records := make([][]string, 0, len(breakdown))
	for _, row := range breakdown {
		records = append(records, []string{
			row.Function,
			formatInt(row.ResponseCount),
			formatOptFloat(row.AvgTimePercentage),
			formatInt(row.AutomationUsers),
			formatFloat(row.AutomationRate),
		})
	}

	headers := []string{"function", "responses", "avg_time_percentage", "automation_users", "automation_rate"}
	return w.csv.WriteSimpleCSV(filePath, headers, records)
}

// WriteResponses streams the normalized responses as CSV.
func (w *ReportWriter) WriteResponses(ctx context.Context, filePath string) error {
	headers := []string{
		domain.FieldRespondentName,
		domain.FieldFunction,
		domain.FieldTimePercentage,
		domain.FieldUsesAutomation,
		domain.FieldAIToolsUsed,
		domain.FieldChallenges,
	}

	stream, err := w.csv.CreateStreamWriter(filePath, headers)
	if err != nil {
		return err
	}

	for _, r := range w.service.Responses(ctx, "") {
		record := []string{
			r.RespondentName,
			r.Function,
			formatOptFloat(r.TimePercentage),
			r.UsesAutomation,
			r.AIToolsUsed,
			r.Challenges,
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("write response record: %w", err)
		}
	}

	return stream.Close()
}

// writeTallyCSV writes one ranked tally as CSV, named after its field.
func (w *ReportWriter) writeTallyCSV(field string, entries []dataprocessing.TallyEntry) error {
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{e.Label, formatInt(e.Count)})
	}
	return w.csv.WriteSimpleCSV(fmt.Sprintf("tally_%s.csv", field), []string{"label", "count"}, records)
}

// writeSummaryJSON writes the summary document with indentation.
func (w *ReportWriter) writeSummaryJSON(filePath string, summary Summary) error {
	fullPath := w.csv.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	return os.WriteFile(fullPath, data, 0644)
}
