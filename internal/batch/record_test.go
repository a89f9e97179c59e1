package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want InputFormat
	}{
		{"bare array", `["a","b"]`, FormatJSONList},
		{"object", `{"prompts":["a"]}`, FormatJSONObject},
		{"array with leading whitespace", "\n\t [\"a\"]", FormatJSONList},
		{"plain lines", "a\nb\n", FormatLines},
		{"empty input", "", FormatLines},
		{"prose starting with letter", "write a poem", FormatLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.raw)))
		})
	}
}

func TestParsePrompts_EquivalentFormats(t *testing.T) {
	// The three input encodings of the same two prompts must parse to the
	// identical record sequence.
	want := []PromptRecord{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b"},
	}

	inputs := []struct {
		name   string
		raw    string
		format InputFormat
	}{
		{"json array", `["a","b"]`, FormatJSONList},
		{"json object", `{"prompts":["a","b"]}`, FormatJSONObject},
		{"lines", "a\nb\n", FormatLines},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParsePrompts([]byte(tt.raw), tt.format)
			require.NoError(t, err)
			assert.Equal(t, want, records)
		})
	}
}

func TestParsePrompts_Lines(t *testing.T) {
	raw := "  first  \n\n\tsecond\n   \nthird\n"
	records, err := ParsePrompts([]byte(raw), FormatLines)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, PromptRecord{Index: 0, Text: "first"}, records[0])
	assert.Equal(t, PromptRecord{Index: 1, Text: "second"}, records[1])
	assert.Equal(t, PromptRecord{Index: 2, Text: "third"}, records[2])
}

func TestParsePrompts_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format InputFormat
	}{
		{"malformed json array", `["a",`, FormatJSONList},
		{"array of numbers", `[1,2,3]`, FormatJSONList},
		{"object without prompts key", `{"items":["a"]}`, FormatJSONObject},
		{"object with non-array prompts", `{"prompts":"a"}`, FormatJSONObject},
		{"empty array", `[]`, FormatJSONList},
		{"empty object prompts", `{"prompts":[]}`, FormatJSONObject},
		{"blank lines only", "\n \n\t\n", FormatLines},
		{"empty input", "", FormatLines},
		{"whitespace-only strings", `["  ", "\t"]`, FormatJSONList},
		{"unknown format", "a", InputFormat("csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParsePrompts([]byte(tt.raw), tt.format)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParsePrompts_DropsEmptyJSONEntries(t *testing.T) {
	records, err := ParsePrompts([]byte(`["a", "", "  ", "b"]`), FormatJSONList)
	require.NoError(t, err)

	// Indices stay contiguous after empty entries are dropped.
	assert.Equal(t, []PromptRecord{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b"},
	}, records)
}
