package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aipulse/pkg/contracts/domain"
)

func TestComputeSavings_ReferenceScenario(t *testing.T) {
	model := ComputeSavings(scenarioTable())

	assert.Equal(t, 100.0, model.TotalWeeklyHours)
	assert.Equal(t, 20.0, model.CurrentAutomationHours)
	assert.Equal(t, 80.0, model.ManualHours)
	assert.Equal(t, 80.0, model.AutomationOpportunity)
	assert.Equal(t, 40.0, model.PotentialSavings(50))
}

func TestComputeSavings_Accounting(t *testing.T) {
	// manual + automated must reconstruct the total for any table.
	tables := []*domain.SurveyTable{
		scenarioTable(),
		{},
		{Responses: []domain.Response{
			{TimePercentage: fptr(10), UsesAutomation: domain.AutomationYes},
			{TimePercentage: nil, UsesAutomation: domain.AutomationYes},
			{TimePercentage: fptr(15.5), UsesAutomation: domain.AutomationNo},
		}},
	}

	for _, table := range tables {
		model := ComputeSavings(table)
		assert.InDelta(t, model.TotalWeeklyHours, model.ManualHours+model.CurrentAutomationHours, 1e-9)
	}
}

func TestComputeSavings_EmptyTable(t *testing.T) {
	model := ComputeSavings(&domain.SurveyTable{})

	assert.Equal(t, 0.0, model.TotalWeeklyHours)
	assert.Equal(t, 0.0, model.ManualHours)
	assert.Equal(t, 0.0, model.AutomationOpportunity, "zero total reports 0, not a division fault")
	assert.Equal(t, 0.0, model.PotentialSavings(50))
}

func TestSavingsModel_Projection(t *testing.T) {
	model := ComputeSavings(scenarioTable())

	tests := []struct {
		name       string
		rate       float64
		wantWeekly float64
		wantTier   string
	}{
		{name: "half automation", rate: 50, wantWeekly: 40, wantTier: TierCelebrate},
		{name: "quarter automation", rate: 25, wantWeekly: 20, wantTier: TierInfo},
		{name: "low automation", rate: 10, wantWeekly: 8, wantTier: TierWarning},
		{name: "no automation", rate: 0, wantWeekly: 0, wantTier: TierWarning},
		{name: "full automation", rate: 100, wantWeekly: 80, wantTier: TierCelebrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Projection(tt.rate)
			assert.InDelta(t, tt.wantWeekly, got.WeeklyHours, 1e-9)
			assert.InDelta(t, tt.wantWeekly*WeeksPerYear, got.AnnualHours, 1e-9)
			assert.InDelta(t, tt.wantWeekly*WeeksPerYear/HoursPerFTE, got.FTEEquivalent, 1e-9)
			assert.Equal(t, tt.wantTier, got.Tier)
		})
	}
}
