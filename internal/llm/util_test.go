package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"skills\": [\"go\"]}\n```",
			expected: `{"skills": ["go"]}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"name\": \"Jane\"}\n```",
			expected: `{"name": "Jane"}`,
		},
		{
			name:     "code block with other language tag",
			input:    "```javascript\n{\"name\": \"Jane\"}\n```",
			expected: `{"name": "Jane"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"experience_years": 4}`,
			expected: `{"experience_years": 4}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the parsed resume:\n{\"name\": \"Jane Doe\"}",
			expected: `{"name": "Jane Doe"}`,
		},
		{
			name:     "preamble before array",
			input:    "Skills found:\n[\"go\", \"sql\"]",
			expected: `["go", "sql"]`,
		},
		{
			name:     "object wins over later array",
			input:    "Result: {\"skills\": [\"python\"]}",
			expected: `{"skills": ["python"]}`,
		},
		{
			name:     "trailing chatter",
			input:    "{\"email\": \"jane@example.com\"}\n\nLet me know if you need anything else!",
			expected: `{"email": "jane@example.com"}`,
		},
		{
			name:     "fenced with preamble inside",
			input:    "```json\nSure! {\"phone\": null}\n```",
			expected: `{"phone": null}`,
		},
		{
			name:     "escaped quotes",
			input:    "Output: {\"summary\": \"Known as \\\"the fixer\\\" {sic}\"}",
			expected: `{"summary": "Known as \"the fixer\" {sic}"}`,
		},
		{
			name:     "no JSON at all",
			input:    "  I could not parse this resume.  ",
			expected: "I could not parse this resume.",
		},
		{
			name:     "unbalanced is returned as is",
			input:    `{"name": "Jane"`,
			expected: `{"name": "Jane"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `{"a": 1}`, `{"a": 1}`},
		{"nested", `{"a": {"b": {"c": 2}}}`, `{"a": {"b": {"c": 2}}}`},
		{"braces in string", `{"t": "x {y} z"} tail`, `{"t": "x {y} z"}`},
		{"trailing text", `{"a": [1, 2]} and more`, `{"a": [1, 2]}`},
		{"empty", "", ""},
		{"not an object", "nope", ""},
		{"never closes", `{"a": {"b": 1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `["a", "b"]`, `["a", "b"]`},
		{"nested", `[[1, 2], [3]]`, `[[1, 2], [3]]`},
		{"objects", `[{"id": 1}, {"id": 2}] extra`, `[{"id": 1}, {"id": 2}]`},
		{"bracket in string", `["a]b"]`, `["a]b"]`},
		{"empty", "", ""},
		{"not an array", "nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONArray(tt.input))
		})
	}
}
