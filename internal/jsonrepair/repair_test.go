package jsonrepair

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_TrailingCommaRoundTrip(t *testing.T) {
	repaired := Repair(`{"a":1,"b":[1,2,3,]}`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &decoded))
	assert.Equal(t, float64(1), decoded["a"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, decoded["b"])
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fence with chatter before object",
			input:    "```\nHere is the JSON:\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "no fence",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestTrimToBraceSpan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "leading and trailing chatter",
			input:    `Sure! {"a": 1} Hope that helps.`,
			expected: `{"a": 1}`,
		},
		{
			name:     "trailing text after balanced object",
			input:    `{"a": {"b": 2}} extra`,
			expected: `{"a": {"b": 2}}`,
		},
		{
			name:     "no braces unchanged",
			input:    `not json at all`,
			expected: `not json at all`,
		},
		{
			name:     "brace inside string value ignored",
			input:    `{"a": "open { brace"} tail`,
			expected: `{"a": "open { brace"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimToBraceSpan(tt.input))
		})
	}
}

func TestRemoveTrailingCommas(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, RemoveTrailingCommas(`{"a": 1,}`))
	assert.Equal(t, `{"a": [1, 2]}`, RemoveTrailingCommas(`{"a": [1, 2,]}`))
	assert.Equal(t, "{\"a\": 1\n}", RemoveTrailingCommas("{\"a\": 1,\n}"))
	// No change when already valid
	assert.Equal(t, `{"a": [1, 2]}`, RemoveTrailingCommas(`{"a": [1, 2]}`))
}

func TestBalanceClosers(t *testing.T) {
	assert.Equal(t, `{"a": [1, 2]}`, BalanceClosers(`{"a": [1, 2`))
	assert.Equal(t, `{"a": {"b": 1}}`, BalanceClosers(`{"a": {"b": 1}`))
	// Braces inside strings are not counted
	assert.Equal(t, `{"a": "{{"}`, BalanceClosers(`{"a": "{{"`))
}

func TestCloseTruncatedString(t *testing.T) {
	// Quote inserted before trailing closers
	assert.Equal(t, `{"a": "abc"}`, CloseTruncatedString(`{"a": "abc}`))
	// Balanced quotes untouched
	assert.Equal(t, `{"a": "abc"}`, CloseTruncatedString(`{"a": "abc"}`))
	// Escaped quotes do not count
	assert.Equal(t, `{"a": "say \"hi\""}`, CloseTruncatedString(`{"a": "say \"hi\""}`))
}

func TestInsertMissingCommas(t *testing.T) {
	assert.Equal(t, `{"a": "x", "b": "y"}`, InsertMissingCommas(`{"a": "x" "b": "y"}`))
	assert.Equal(t, `{"a": {}, "b": 1}`, InsertMissingCommas(`{"a": {} "b": 1}`))
	assert.Equal(t, `{"a": [], "b": 1}`, InsertMissingCommas(`{"a": [] "b": 1}`))
	// Valid JSON untouched
	assert.Equal(t, `{"a": 1, "b": 2}`, InsertMissingCommas(`{"a": 1, "b": 2}`))
}

func TestRepair_TruncatedResponse(t *testing.T) {
	// A response cut off mid-value, as happens when max tokens is hit.
	raw := "```json\n{\"fit_score\": 72, \"recommendation\": \"GOOD_FIT\", \"detailed_feedback\": \"Strong backend exp"

	repaired := Repair(raw)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &decoded))
	assert.Equal(t, float64(72), decoded["fit_score"])
	assert.Equal(t, "GOOD_FIT", decoded["recommendation"])
}

func TestRepair_NotGuaranteed(t *testing.T) {
	// Repair is best-effort: garbage stays garbage and the caller falls back.
	out := Repair("completely unstructured text with no json")
	var decoded map[string]any
	assert.Error(t, json.Unmarshal([]byte(out), &decoded))
}

func TestPipelineOrder(t *testing.T) {
	names := make([]string, 0)
	for _, step := range Pipeline() {
		names = append(names, step.Name)
	}
	assert.Equal(t, []string{
		"strip_fences",
		"trim_brace_span",
		"remove_trailing_commas",
		"balance_closers",
		"close_truncated_string",
		"insert_missing_commas",
	}, names)
}
