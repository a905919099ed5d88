package dataprocessing

// OverviewMetrics holds the headline numbers for a table or a segment.
// Ratio fields are nil when the denominator is zero ("not available"),
// never NaN.
type OverviewMetrics struct {
	TotalResponses    int      `json:"total_responses"`
	AvgTimePercentage *float64 `json:"avg_time_percentage"`
	AutomationUsers   int      `json:"automation_users"`
	AutomationRate    *float64 `json:"automation_rate"`
}

// FunctionStats is one row of the per-function breakdown table.
type FunctionStats struct {
	Function          string   `json:"function"`
	ResponseCount     int      `json:"response_count"`
	AvgTimePercentage *float64 `json:"avg_time_percentage"`
	AutomationUsers   int      `json:"automation_users"`
	AutomationRate    float64  `json:"automation_rate"`
}

// TallyEntry is one (label, count) pair of a ranked frequency list.
type TallyEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin is one bucket of a time-percentage distribution.
// Bins are half-open [Lower, Upper) except the last, which is closed.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// FunctionPotential describes the automation opportunity for one function:
// how its reported weekly hours split between manual and already-automated
// work, and what a 50% automation push would free up.
type FunctionPotential struct {
	Function         string  `json:"function"`
	TotalHours       float64 `json:"total_hours"`
	ManualHours      float64 `json:"manual_hours"`
	AutomatedHours   float64 `json:"automated_hours"`
	PotentialSavings float64 `json:"potential_savings_50"`
}
