package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func TestResponseCleaner_Clean(t *testing.T) {
	t.Parallel()

	cleaner := NewResponseCleaner()

	tests := []struct {
		name   string
		input  string
		status ParseStatus
		want   string
	}{
		{"clean json", `{"status": "success"}`, ParseOK, `{"status": "success"}`},
		{"markdown fenced", "```json\n{\"status\": \"success\"}\n```", ParseOK, `{"status": "success"}`},
		{"payload on fence line", "```{\n\"a\": 1}\n```", ParseOK, "{\n\"a\": 1}"},
		{"bare fence then json", "```\n{\"a\": 1}\n```", ParseOK, `{"a": 1}`},
		{"fence after prose", "Here you go:\n```\n{\"a\": 1}\n```\nThanks!", ParseOK, `{"a": 1}`},
		{"prose around json", `Here is the response: {"status": "success", "data": "test"} hope it helps`, ParseOK, `{"status": "success", "data": "test"}`},
		{"braces inside strings", `{"a": "x } y", "b": {"c": "{"}}`, ParseOK, `{"a": "x } y", "b": {"c": "{"}}`},
		{"escaped quote", `{"a": "say \"hi\" }"}`, ParseOK, `{"a": "say \"hi\" }"}`},
		{"trailing commas", "{\"a\": [1, 2,],\n \"b\": 3,\n}", ParseOK, "{\"a\": [1, 2],\n \"b\": 3\n}"},
		{"comma inside string kept", `{"a": "x,}", "b": 1,}`, ParseOK, `{"a": "x,}", "b": 1}`},
		{"empty", "   ", ParseEmpty, ""},
		{"no json", "I cannot help with that.", ParseNoJSON, ""},
		{"unbalanced", `{"a": {"b": 1}`, ParseNoJSON, ""},
		{"invalid json", `{a: 1}`, ParseInvalidJSON, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cleaner.Clean(tt.input)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.want, got.JSON)
			assert.Equal(t, tt.status == ParseOK, got.OK())
		})
	}
}

func TestParseResult_Err(t *testing.T) {
	t.Parallel()

	require.NoError(t, ParseResult{Status: ParseOK, JSON: "{}"}.Err())

	err := ParseResult{Status: ParseInvalidJSON}.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
	assert.Contains(t, err.Error(), "invalid_json")
}

func TestParseStatus_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ok", ParseOK.String())
	assert.Equal(t, "empty", ParseEmpty.String())
	assert.Equal(t, "no_json", ParseNoJSON.String())
	assert.Equal(t, "invalid_json", ParseInvalidJSON.String())
	assert.Equal(t, "unknown", ParseStatus(99).String())
}
