package domain

import (
	"sort"
	"strings"
)

// Automation answer values after normalization. A missing answer is always
// resolved to AutomationNo during loading, never left blank.
const (
	AutomationYes = "Yes"
	AutomationNo  = "No"
)

// Canonical survey field names. These are the only names the aggregation
// layer knows about; the loader maps raw question headers onto them.
const (
	FieldRespondentName      = "respondent_name"
	FieldFunction            = "function"
	FieldTopTasks            = "top_tasks"
	FieldTimePercentage      = "time_percentage"
	FieldUsesAutomation      = "uses_automation"
	FieldAutomationTools     = "automation_tools"
	FieldAIToolsUsed         = "ai_tools_used"
	FieldUsageFrequency      = "usage_frequency"
	FieldProficiencyLevel    = "proficiency_level"
	FieldChallenges          = "challenges"
	FieldSkillNeeds          = "skill_needs"
	FieldFuturePossibilities = "future_possibilities"
)

// Response represents a single normalized survey submission.
// TimePercentage is nil when the raw value could not be parsed as a number;
// such rows are excluded from means and sums, never treated as zero.
type Response struct {
	RespondentName      string   `json:"respondent_name"`
	Function            string   `json:"function"`
	TopTasks            string   `json:"top_tasks,omitempty"`
	TimePercentage      *float64 `json:"time_percentage"`
	UsesAutomation      string   `json:"uses_automation"`
	AutomationTools     string   `json:"automation_tools,omitempty"`
	AIToolsUsed         string   `json:"ai_tools_used,omitempty"`
	UsageFrequency      string   `json:"usage_frequency,omitempty"`
	ProficiencyLevel    string   `json:"proficiency_level,omitempty"`
	Challenges          string   `json:"challenges,omitempty"`
	SkillNeeds          string   `json:"skill_needs,omitempty"`
	FuturePossibilities string   `json:"future_possibilities,omitempty"`
}

// Field returns the value of a canonical free-text field by name.
// Numeric fields are not addressable this way; unknown names return "".
func (r Response) Field(name string) string {
	switch name {
	case FieldRespondentName:
		return r.RespondentName
	case FieldFunction:
		return r.Function
	case FieldTopTasks:
		return r.TopTasks
	case FieldUsesAutomation:
		return r.UsesAutomation
	case FieldAutomationTools:
		return r.AutomationTools
	case FieldAIToolsUsed:
		return r.AIToolsUsed
	case FieldUsageFrequency:
		return r.UsageFrequency
	case FieldProficiencyLevel:
		return r.ProficiencyLevel
	case FieldChallenges:
		return r.Challenges
	case FieldSkillNeeds:
		return r.SkillNeeds
	case FieldFuturePossibilities:
		return r.FuturePossibilities
	}
	return ""
}

// SurveyTable is the normalized, read-only table of survey responses.
// It is built once per load and never mutated afterwards; concurrent reads
// are safe without locking.
type SurveyTable struct {
	Responses []Response `json:"responses"`
}

// Len returns the number of responses in the table.
func (t *SurveyTable) Len() int {
	return len(t.Responses)
}

// Functions returns the distinct function labels in the table, sorted for
// deterministic output. Blank functions form their own group.
func (t *SurveyTable) Functions() []string {
	seen := make(map[string]struct{})
	var functions []string
	for _, r := range t.Responses {
		if _, ok := seen[r.Function]; !ok {
			seen[r.Function] = struct{}{}
			functions = append(functions, r.Function)
		}
	}
	sort.Strings(functions)
	return functions
}

// FilterFunction returns a sub-table containing only responses for the given
// function label. An unknown label yields an empty table, not an error.
func (t *SurveyTable) FilterFunction(function string) *SurveyTable {
	filtered := &SurveyTable{}
	for _, r := range t.Responses {
		if r.Function == function {
			filtered.Responses = append(filtered.Responses, r)
		}
	}
	return filtered
}

// SplitMultiValued splits a comma-joined multi-select answer into trimmed
// tokens, dropping empty entries. "A, B,C" and "A,B, C" split identically.
func SplitMultiValued(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if token := strings.TrimSpace(p); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
