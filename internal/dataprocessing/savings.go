package dataprocessing

import (
	"aipulse/pkg/contracts/domain"
)

// Hours-to-positions conversion constants for the projection output.
const (
	WeeksPerYear = 52
	HoursPerFTE  = 2080
)

// ROI message tiers for the interactive calculator, keyed off the chosen
// automation rate.
const (
	TierCelebrate = "celebrate" // rate >= 50
	TierInfo      = "info"      // rate >= 25
	TierWarning   = "warning"   // anything lower
)

// SavingsModel is the linear time-savings projection over a table.
// Already-automated time is the sum of time_percentage over responses that
// answered "Yes", regardless of which task the percentage describes; manual
// hours are the remainder. manual + automated always equals total.
type SavingsModel struct {
	TotalWeeklyHours       float64 `json:"total_weekly_hours"`
	CurrentAutomationHours float64 `json:"current_automation_hours"`
	ManualHours            float64 `json:"manual_hours"`
	AutomationOpportunity  float64 `json:"automation_opportunity"`
}

// SavingsProjection is the calculator output for a chosen automation rate.
type SavingsProjection struct {
	AutomationRate float64 `json:"automation_rate"`
	WeeklyHours    float64 `json:"weekly_hours"`
	AnnualHours    float64 `json:"annual_hours"`
	FTEEquivalent  float64 `json:"fte_equivalent"`
	Tier           string  `json:"tier"`
}

// ComputeSavings builds the savings model from a table. A zero total yields
// an opportunity of 0, not a division fault.
func ComputeSavings(table *domain.SurveyTable) SavingsModel {
	model := SavingsModel{}
	for _, r := range table.Responses {
		if r.TimePercentage == nil {
			continue
		}
		model.TotalWeeklyHours += *r.TimePercentage
		if r.UsesAutomation == domain.AutomationYes {
			model.CurrentAutomationHours += *r.TimePercentage
		}
	}

	model.ManualHours = model.TotalWeeklyHours - model.CurrentAutomationHours
	if model.TotalWeeklyHours > 0 {
		model.AutomationOpportunity = model.ManualHours / model.TotalWeeklyHours * 100
	}
	return model
}

// PotentialSavings returns the weekly hours freed by automating rate percent
// (0-100) of the manual workload.
func (m SavingsModel) PotentialSavings(rate float64) float64 {
	return m.ManualHours * rate / 100
}

// Projection expands a chosen automation rate into the calculator view:
// weekly and annual hours plus the full-time-position equivalent.
func (m SavingsModel) Projection(rate float64) SavingsProjection {
	weekly := m.PotentialSavings(rate)
	annual := weekly * WeeksPerYear
	return SavingsProjection{
		AutomationRate: rate,
		WeeklyHours:    weekly,
		AnnualHours:    annual,
		FTEEquivalent:  annual / HoursPerFTE,
		Tier:           projectionTier(rate),
	}
}

func projectionTier(rate float64) string {
	switch {
	case rate >= 50:
		return TierCelebrate
	case rate >= 25:
		return TierInfo
	default:
		return TierWarning
	}
}
