package dataprocessing

import (
	"sort"

	"aipulse/pkg/contracts/domain"
)

// Overview computes the headline metrics for a table. On an empty table the
// mean and the rate are nil ("not available"); counts are zero.
func Overview(table *domain.SurveyTable) OverviewMetrics {
	metrics := OverviewMetrics{
		TotalResponses:  table.Len(),
		AutomationUsers: countAutomationUsers(table),
	}

	metrics.AvgTimePercentage = meanTimePercentage(table)

	if metrics.TotalResponses > 0 {
		rate := float64(metrics.AutomationUsers) / float64(metrics.TotalResponses) * 100
		metrics.AutomationRate = &rate
	}

	return metrics
}

// FunctionBreakdown computes per-function statistics, one row per distinct
// function label, sorted by label so the output is reproducible across runs.
func FunctionBreakdown(table *domain.SurveyTable) []FunctionStats {
	breakdown := make([]FunctionStats, 0, 8)
	for _, function := range table.Functions() {
		group := table.FilterFunction(function)
		stats := FunctionStats{
			Function:          function,
			ResponseCount:     group.Len(),
			AvgTimePercentage: meanTimePercentage(group),
			AutomationUsers:   countAutomationUsers(group),
		}
		// group.Len() > 0 by construction: the label came from the table.
		stats.AutomationRate = float64(stats.AutomationUsers) / float64(stats.ResponseCount) * 100
		breakdown = append(breakdown, stats)
	}
	return breakdown
}

// Tally counts the individual tokens of a multi-valued field across all
// responses: each non-missing value is split on commas, tokens are trimmed
// and flattened, and the result is ranked by descending count (ties broken
// by label). limit <= 0 means no truncation.
func Tally(table *domain.SurveyTable, field string, limit int) []TallyEntry {
	counts := make(map[string]int)
	for _, r := range table.Responses {
		for _, token := range domain.SplitMultiValued(r.Field(field)) {
			counts[token]++
		}
	}
	return rankCounts(counts, limit)
}

// Distribution counts whole values of a categorical field (no splitting);
// distinct raw strings are distinct categories. Blank values are treated as
// missing and excluded. The result is ranked like Tally.
func Distribution(table *domain.SurveyTable, field string) []TallyEntry {
	counts := make(map[string]int)
	for _, r := range table.Responses {
		if v := r.Field(field); v != "" {
			counts[v]++
		}
	}
	return rankCounts(counts, 0)
}

// TimeHistogram buckets the present time_percentage values into
// max(5, min(10, n/2)) equal-width bins over the observed range.
// An empty input yields no bins.
func TimeHistogram(table *domain.SurveyTable) []HistogramBin {
	var values []float64
	for _, r := range table.Responses {
		if r.TimePercentage != nil {
			values = append(values, *r.TimePercentage)
		}
	}
	if len(values) == 0 {
		return nil
	}

	bins := len(values) / 2
	if bins > 10 {
		bins = 10
	}
	if bins < 5 {
		bins = 5
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		// Degenerate range: everything lands in one bucket.
		return []HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	histogram := make([]HistogramBin, bins)
	for i := range histogram {
		histogram[i].Lower = lo + float64(i)*width
		histogram[i].Upper = lo + float64(i+1)*width
	}
	histogram[bins-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		histogram[idx].Count++
	}

	return histogram
}

// AutomationPotential computes the per-function time allocation rows behind
// the opportunity chart: total reported hours, the manual share (responses
// not using automation), the already-automated remainder, and the savings a
// 50% automation push would free up. Rows are sorted by function label.
func AutomationPotential(table *domain.SurveyTable) []FunctionPotential {
	rows := make([]FunctionPotential, 0, 8)
	for _, function := range table.Functions() {
		group := table.FilterFunction(function)

		var total, manual float64
		for _, r := range group.Responses {
			if r.TimePercentage == nil {
				continue
			}
			total += *r.TimePercentage
			if r.UsesAutomation == domain.AutomationNo {
				manual += *r.TimePercentage
			}
		}

		rows = append(rows, FunctionPotential{
			Function:         function,
			TotalHours:       total,
			ManualHours:      manual,
			AutomatedHours:   total - manual,
			PotentialSavings: manual * 0.5,
		})
	}
	return rows
}

// meanTimePercentage averages the present time values only; missing values
// are excluded, not zero. Returns nil when no value is present.
func meanTimePercentage(table *domain.SurveyTable) *float64 {
	var sum float64
	count := 0
	for _, r := range table.Responses {
		if r.TimePercentage != nil {
			sum += *r.TimePercentage
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

func countAutomationUsers(table *domain.SurveyTable) int {
	count := 0
	for _, r := range table.Responses {
		if r.UsesAutomation == domain.AutomationYes {
			count++
		}
	}
	return count
}

// rankCounts turns a count map into a descending-frequency list with
// deterministic tie ordering by label.
func rankCounts(counts map[string]int, limit int) []TallyEntry {
	entries := make([]TallyEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, TallyEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
