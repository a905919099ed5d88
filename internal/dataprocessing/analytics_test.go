package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipulse/pkg/contracts/domain"
)

// scenarioTable is the reference table used across aggregate tests:
// Sales 20 (Yes), Sales 30 (No), Ops 50 (No).
func scenarioTable() *domain.SurveyTable {
	return &domain.SurveyTable{Responses: []domain.Response{
		{RespondentName: "Alice", Function: "Sales", TimePercentage: fptr(20), UsesAutomation: domain.AutomationYes},
		{RespondentName: "Bob", Function: "Sales", TimePercentage: fptr(30), UsesAutomation: domain.AutomationNo},
		{RespondentName: "Carol", Function: "Ops", TimePercentage: fptr(50), UsesAutomation: domain.AutomationNo},
	}}
}

func TestOverview(t *testing.T) {
	tests := []struct {
		name      string
		table     *domain.SurveyTable
		wantTotal int
		wantUsers int
		wantMean  *float64
		wantRate  *float64
	}{
		{
			name:      "reference scenario",
			table:     scenarioTable(),
			wantTotal: 3,
			wantUsers: 1,
			wantMean:  fptr(100.0 / 3),
			wantRate:  fptr(100.0 / 3),
		},
		{
			name:      "empty table degrades gracefully",
			table:     &domain.SurveyTable{},
			wantTotal: 0,
			wantUsers: 0,
			wantMean:  nil,
			wantRate:  nil,
		},
		{
			name: "missing time values excluded from mean",
			table: &domain.SurveyTable{Responses: []domain.Response{
				{Function: "Sales", TimePercentage: fptr(40), UsesAutomation: domain.AutomationNo},
				{Function: "Sales", TimePercentage: nil, UsesAutomation: domain.AutomationNo},
			}},
			wantTotal: 2,
			wantUsers: 0,
			wantMean:  fptr(40),
			wantRate:  fptr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overview(tt.table)
			assert.Equal(t, tt.wantTotal, got.TotalResponses)
			assert.Equal(t, tt.wantUsers, got.AutomationUsers)
			assertOptFloat(t, tt.wantMean, got.AvgTimePercentage)
			assertOptFloat(t, tt.wantRate, got.AutomationRate)
		})
	}
}

func TestFunctionBreakdown(t *testing.T) {
	breakdown := FunctionBreakdown(scenarioTable())
	require.Len(t, breakdown, 2)

	// Rows are sorted by function label.
	ops, sales := breakdown[0], breakdown[1]

	assert.Equal(t, "Ops", ops.Function)
	assert.Equal(t, 1, ops.ResponseCount)
	assert.Equal(t, 0, ops.AutomationUsers)
	assert.Equal(t, 0.0, ops.AutomationRate)

	assert.Equal(t, "Sales", sales.Function)
	assert.Equal(t, 2, sales.ResponseCount)
	assert.Equal(t, 1, sales.AutomationUsers)
	assert.Equal(t, 50.0, sales.AutomationRate)
	require.NotNil(t, sales.AvgTimePercentage)
	assert.Equal(t, 25.0, *sales.AvgTimePercentage)
}

func TestFunctionBreakdown_RateBounds(t *testing.T) {
	for _, stats := range FunctionBreakdown(scenarioTable()) {
		assert.GreaterOrEqual(t, stats.AutomationRate, 0.0)
		assert.LessOrEqual(t, stats.AutomationRate, 100.0)
	}
}

func TestSegmentation_UnknownFunction(t *testing.T) {
	segment := scenarioTable().FilterFunction("Legal")
	assert.Equal(t, 0, segment.Len())

	got := Overview(segment)
	assert.Equal(t, 0, got.TotalResponses)
	assert.Nil(t, got.AutomationRate, "unknown segment reports not-available, not an error")
}

func TestTally(t *testing.T) {
	table := &domain.SurveyTable{Responses: []domain.Response{
		{Challenges: "Accuracy, Trust,Prompting"},
		{Challenges: "Accuracy,Trust"},
		{Challenges: "Accuracy"},
		{Challenges: ""},
	}}

	got := Tally(table, domain.FieldChallenges, 0)
	want := []TallyEntry{
		{Label: "Accuracy", Count: 3},
		{Label: "Trust", Count: 2},
		{Label: "Prompting", Count: 1},
	}
	assert.Equal(t, want, got)
}

func TestTally_WhitespaceInvariance(t *testing.T) {
	left := &domain.SurveyTable{Responses: []domain.Response{{Challenges: "A, B,C"}}}
	right := &domain.SurveyTable{Responses: []domain.Response{{Challenges: "A,B, C"}}}

	assert.Equal(t, Tally(left, domain.FieldChallenges, 0), Tally(right, domain.FieldChallenges, 0))
}

func TestTally_TopK(t *testing.T) {
	table := &domain.SurveyTable{Responses: []domain.Response{
		{AIToolsUsed: "Copilot, ChatGPT, Copilot"},
		{AIToolsUsed: "ChatGPT, Gemini"},
		{AIToolsUsed: "Copilot"},
	}}

	got := Tally(table, domain.FieldAIToolsUsed, 2)
	require.Len(t, got, 2)
	assert.Equal(t, TallyEntry{Label: "Copilot", Count: 3}, got[0])
	assert.Equal(t, TallyEntry{Label: "ChatGPT", Count: 2}, got[1])
}

func TestDistribution(t *testing.T) {
	table := &domain.SurveyTable{Responses: []domain.Response{
		{ProficiencyLevel: "Beginner"},
		{ProficiencyLevel: "Beginner"},
		{ProficiencyLevel: "Advanced"},
		{ProficiencyLevel: ""},
	}}

	got := Distribution(table, domain.FieldProficiencyLevel)
	want := []TallyEntry{
		{Label: "Beginner", Count: 2},
		{Label: "Advanced", Count: 1},
	}
	assert.Equal(t, want, got, "whole values count as categories, blanks excluded")
}

func TestTimeHistogram(t *testing.T) {
	t.Run("empty table yields no bins", func(t *testing.T) {
		assert.Nil(t, TimeHistogram(&domain.SurveyTable{}))
	})

	t.Run("degenerate range collapses to one bin", func(t *testing.T) {
		table := &domain.SurveyTable{Responses: []domain.Response{
			{TimePercentage: fptr(30)},
			{TimePercentage: fptr(30)},
		}}
		got := TimeHistogram(table)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Count)
	})

	t.Run("bin count follows max(5, min(10, n/2))", func(t *testing.T) {
		table := &domain.SurveyTable{}
		for i := 0; i < 30; i++ {
			table.Responses = append(table.Responses, domain.Response{TimePercentage: fptr(float64(i))})
		}
		got := TimeHistogram(table)
		assert.Len(t, got, 10)

		counted := 0
		for _, bin := range got {
			counted += bin.Count
		}
		assert.Equal(t, 30, counted, "every value lands in exactly one bin")
	})
}

func TestAutomationPotential(t *testing.T) {
	rows := AutomationPotential(scenarioTable())
	require.Len(t, rows, 2)

	ops, sales := rows[0], rows[1]

	assert.Equal(t, "Ops", ops.Function)
	assert.Equal(t, 50.0, ops.TotalHours)
	assert.Equal(t, 50.0, ops.ManualHours)
	assert.Equal(t, 0.0, ops.AutomatedHours)
	assert.Equal(t, 25.0, ops.PotentialSavings)

	assert.Equal(t, "Sales", sales.Function)
	assert.Equal(t, 50.0, sales.TotalHours)
	assert.Equal(t, 30.0, sales.ManualHours)
	assert.Equal(t, 20.0, sales.AutomatedHours)
}

func assertOptFloat(t *testing.T, want, got *float64) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.InDelta(t, *want, *got, 1e-9)
}
