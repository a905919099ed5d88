package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMultiValued(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "A,B,C",
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "whitespace around tokens is irrelevant",
			input: " A , B ,C",
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "empty tokens dropped",
			input: "A,,B,",
			want:  []string{"A", "B"},
		},
		{
			name:  "blank input",
			input: "   ",
			want:  nil,
		},
		{
			name:  "single token",
			input: "Data entry",
			want:  []string{"Data entry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitMultiValued(tt.input))
		})
	}
}

func TestSurveyTable_Functions(t *testing.T) {
	table := &SurveyTable{Responses: []Response{
		{Function: "Sales"},
		{Function: "Ops"},
		{Function: "Sales"},
		{Function: ""},
	}}

	assert.Equal(t, []string{"", "Ops", "Sales"}, table.Functions())
}

func TestSurveyTable_FilterFunction(t *testing.T) {
	table := &SurveyTable{Responses: []Response{
		{RespondentName: "Alice", Function: "Sales"},
		{RespondentName: "Bob", Function: "Ops"},
		{RespondentName: "Carol", Function: "Sales"},
	}}

	sales := table.FilterFunction("Sales")
	assert.Equal(t, 2, sales.Len())
	assert.Equal(t, "Alice", sales.Responses[0].RespondentName)

	unknown := table.FilterFunction("Legal")
	assert.Equal(t, 0, unknown.Len())
}

func TestResponse_Field(t *testing.T) {
	r := Response{
		Function:   "Ops",
		Challenges: "Accuracy, Trust",
	}

	assert.Equal(t, "Ops", r.Field(FieldFunction))
	assert.Equal(t, "Accuracy, Trust", r.Field(FieldChallenges))
	assert.Equal(t, "", r.Field("no_such_field"))
	assert.Equal(t, "", r.Field(FieldTimePercentage), "numeric fields are not addressable as text")
}
