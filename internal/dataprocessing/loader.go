package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"aipulse/pkg/contracts/domain"
)

// columnMapping maps the exact survey question text (after whitespace trim)
// to canonical field names. A header that matches no entry is ignored; this
// keeps the loader compatible with survey-tool exports that add columns.
var columnMapping = map[string]string{
	"Submitted By":                              domain.FieldRespondentName,
	"Q1:  SCG Function - Which group are you from ?": domain.FieldFunction,
	"Q2. Top 3 Time-Intensive Repetitive Tasks: (Select the top 3 tasks that consumes MOST time in your typical work week)":  domain.FieldTopTasks,
	"Q2a. For the identified tasks above, estimate what percentage of your time (in a week) you spend working on them.":      domain.FieldTimePercentage,
	"Q2b. Do you use automation/AI tools to perform the identified time-consuming tasks above?":                             domain.FieldUsesAutomation,
	"If you answered 'Yes', please specify what automation/AI tools and the task that it is currently used for.":            domain.FieldAutomationTools,
	"Q3. AI Tools Familiar With: Do you use any AI tools for your work tasks?":                                              domain.FieldAIToolsUsed,
	"Q4. AI Tool Usage: How frequently do you currently use AI tools in your work?":                                         domain.FieldUsageFrequency,
	"Q5. Current Proficiency Level: How would you rate your current proficiency level with AI tools?":                       domain.FieldProficiencyLevel,
	"Q6. Current Challenges:  When using AI tools for work, what are your biggest challenges? (Select all that apply)":      domain.FieldChallenges,
	"Q7. Skillset Needs: Which AI prompt engineering skills would help you most in your daily work? (Select up to 3)":       domain.FieldSkillNeeds,
	"Q8. Future Possibilities:  Which areas of GT's corporate functions do you think AI can drive impact and effectiveness?": domain.FieldFuturePossibilities,
}

// Loader reads raw survey export files and normalizes them into SurveyTables.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new survey loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the survey file at path and returns the normalized table.
// CSV is the primary format; files with an .xlsx extension are read through
// excelize. On an unreadable or unparseable file the returned table is empty
// and the error carries the diagnostic; callers substitute the empty table
// rather than aborting.
func (l *Loader) Load(ctx context.Context, path string) (*domain.SurveyTable, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = l.readXLSX(path)
	default:
		rows, err = l.readCSV(path)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to read survey file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return &domain.SurveyTable{}, fmt.Errorf("read survey file %s: %w", path, err)
	}

	table := l.buildTable(rows)

	l.logger.InfoContext(ctx, "survey file loaded",
		slog.String("path", path),
		slog.Int("raw_rows", len(rows)),
		slog.Int("responses", table.Len()))

	return table, nil
}

// readCSV reads all rows from a comma-delimited file. Rows whose field count
// differs from the header are skipped rather than aborting the load.
func (l *Loader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 0 // first record sets the expected count
	reader.LazyQuotes = true

	var rows [][]string
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Lenient-parse policy: drop the malformed row, keep going.
				skipped++
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}

	if skipped > 0 {
		l.logger.Warn("skipped malformed csv rows",
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}

	return rows, nil
}

// readXLSX reads all rows from the first sheet of an Excel workbook.
// excelize drops trailing empty cells, so short rows are padded to the
// header width instead of being treated as malformed.
func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return rows, nil
	}

	width := len(rows[0])
	padded := make([][]string, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if i > 0 && len(row) > width {
			skipped++
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}
		padded = append(padded, row)
	}

	if skipped > 0 {
		l.logger.Warn("skipped oversized xlsx rows",
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}

	return padded, nil
}

// buildTable maps raw rows onto the canonical field contract and applies the
// normalization rules: trimmed headers, numeric coercion of time_percentage,
// "No" default for missing automation answers, trimmed function labels.
func (l *Loader) buildTable(rows [][]string) *domain.SurveyTable {
	table := &domain.SurveyTable{}
	if len(rows) == 0 {
		return table
	}

	// Map canonical field names to column positions from the header row.
	columns := make(map[string]int)
	for i, header := range rows[0] {
		if field, ok := columnMapping[strings.TrimSpace(header)]; ok {
			columns[field] = i
		}
	}

	cell := func(row []string, field string) (string, bool) {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return "", false
		}
		return row[idx], true
	}

	for _, row := range rows[1:] {
		resp := domain.Response{}

		if v, ok := cell(row, domain.FieldRespondentName); ok {
			resp.RespondentName = v
		}
		if v, ok := cell(row, domain.FieldFunction); ok {
			resp.Function = strings.TrimSpace(v)
		}
		if v, ok := cell(row, domain.FieldTopTasks); ok {
			resp.TopTasks = v
		}
		if v, ok := cell(row, domain.FieldTimePercentage); ok {
			resp.TimePercentage = parseTimePercentage(v)
		}

		// The automation answer always resolves to exactly "Yes" or "No";
		// a missing answer defaults to "No" by explicit rule.
		resp.UsesAutomation = domain.AutomationNo
		if v, ok := cell(row, domain.FieldUsesAutomation); ok {
			if strings.TrimSpace(v) == domain.AutomationYes {
				resp.UsesAutomation = domain.AutomationYes
			}
		}

		if v, ok := cell(row, domain.FieldAutomationTools); ok {
			resp.AutomationTools = v
		}
		if v, ok := cell(row, domain.FieldAIToolsUsed); ok {
			resp.AIToolsUsed = v
		}
		if v, ok := cell(row, domain.FieldUsageFrequency); ok {
			resp.UsageFrequency = v
		}
		if v, ok := cell(row, domain.FieldProficiencyLevel); ok {
			resp.ProficiencyLevel = v
		}
		if v, ok := cell(row, domain.FieldChallenges); ok {
			resp.Challenges = v
		}
		if v, ok := cell(row, domain.FieldSkillNeeds); ok {
			resp.SkillNeeds = v
		}
		if v, ok := cell(row, domain.FieldFuturePossibilities); ok {
			resp.FuturePossibilities = v
		}

		table.Responses = append(table.Responses, resp)
	}

	return table
}

// parseTimePercentage coerces the self-reported time share to a number.
// Values that do not parse become missing (nil), never an error. Values
// above 100 are accepted as-is; self-reports can exceed nominal bounds when
// tasks overlap, so the loader flags nothing and fixes nothing.
func parseTimePercentage(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}
