package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipulse/internal/config"
	"aipulse/internal/services"
)

var reportHeaders = []string{
	"Submitted By",
	"Q1:  SCG Function - Which group are you from ?",
	"Q2a. For the identified tasks above, estimate what percentage of your time (in a week) you spend working on them.",
	"Q2b. Do you use automation/AI tools to perform the identified time-consuming tasks above?",
	"Q6. Current Challenges:  When using AI tools for work, what are your biggest challenges? (Select all that apply)",
}

func newReportWriter(t *testing.T) (*ReportWriter, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "responses.csv")
	file, err := os.Create(path)
	require.NoError(t, err)

	w := csv.NewWriter(file)
	require.NoError(t, w.Write(reportHeaders))
	require.NoError(t, w.Write([]string{"Alice", "Sales", "20", "Yes", "Accuracy, Trust"}))
	require.NoError(t, w.Write([]string{"Bob", "Ops", "50", "No", "Accuracy"}))
	w.Flush()
	require.NoError(t, file.Close())

	cfg := config.Default()
	cfg.Survey.ResponsesFile = path

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	svc := services.NewSurveyService(cfg, nil, logger)

	reportsDir := filepath.Join(dir, "reports")
	return NewReportWriter(reportsDir, svc, logger), reportsDir
}

func TestReportWriter_WriteAll(t *testing.T) {
	writer, reportsDir := newReportWriter(t)

	reportID, err := writer.WriteAll(context.Background(), 50)
	require.NoError(t, err)
	_, err = uuid.Parse(reportID)
	assert.NoError(t, err, "report ID is a UUID")

	for _, name := range []string{
		"breakdown.csv",
		"responses.csv",
		"tally_challenges.csv",
		"summary.json",
	} {
		_, err := os.Stat(filepath.Join(reportsDir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(reportsDir, "summary.json"))
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, reportID, summary.ReportID)
	assert.NotEmpty(t, summary.GeneratedAt)
	assert.Equal(t, 2, summary.Overview.TotalResponses)
	assert.Equal(t, 2, summary.Tallies["challenges"][0].Count, "Accuracy appears twice")
	assert.Equal(t, 70.0, summary.Savings.Model.TotalWeeklyHours)
}

func TestReportWriter_WriteBreakdown(t *testing.T) {
	writer, reportsDir := newReportWriter(t)

	require.NoError(t, writer.WriteBreakdown(context.Background(), "breakdown.csv"))

	data, err := os.ReadFile(filepath.Join(reportsDir, "breakdown.csv"))
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "header plus two function rows")
	assert.Equal(t, "function", rows[0][0])
	assert.Equal(t, "Ops", rows[1][0], "functions sorted")
	assert.Equal(t, "Sales", rows[2][0])
	assert.Equal(t, "100.00", rows[2][4], "Sales is fully automated")
}

func TestCSVWriter_BOMAndAppend(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteSimpleCSV("out.csv", []string{"a", "b"}, [][]string{{"1", "2"}}))
	require.NoError(t, w.WriteCSV("out.csv", WriteOptions{Records: [][]string{{"3", "4"}}, Append: true}))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"), "BOM prefix present")
	assert.Contains(t, string(data), "3,4")
}
