package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// InputFormat identifies how a raw prompt collection is encoded.
type InputFormat string

// Supported input formats
const (
	// FormatLines is UTF-8 text with one prompt per non-empty line.
	FormatLines InputFormat = "lines"

	// FormatJSONList is a bare JSON array of strings.
	FormatJSONList InputFormat = "json_list"

	// FormatJSONObject is a JSON object with a "prompts" key holding
	// an array of strings.
	FormatJSONObject InputFormat = "json_object"
)

// PromptRecord is a single prompt with its stable, 0-based position in the
// input collection. Records are immutable once created.
type PromptRecord struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// DetectFormat resolves the input format before parsing. Structured shapes
// are recognized first by their leading token; anything else falls back to
// line-delimited text.
func DetectFormat(raw []byte) InputFormat {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '[':
			return FormatJSONList
		case '{':
			return FormatJSONObject
		}
	}
	return FormatLines
}

// ParsePrompts parses a raw prompt collection into an ordered sequence of
// PromptRecords. Prompt text is trimmed and empty entries are dropped;
// surviving prompts keep their relative order and are indexed contiguously
// from zero. It returns ErrParse for malformed structured input or when the
// resolved list is empty.
func ParsePrompts(raw []byte, format InputFormat) ([]PromptRecord, error) {
	var prompts []string

	switch format {
	case FormatLines:
		for _, line := range strings.Split(string(raw), "\n") {
			prompts = append(prompts, line)
		}

	case FormatJSONList:
		if err := json.Unmarshal(raw, &prompts); err != nil {
			return nil, fmt.Errorf("%w: expected a JSON array of strings: %v", ErrParse, err)
		}

	case FormatJSONObject:
		var obj struct {
			Prompts *[]string `json:"prompts"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: expected a JSON object: %v", ErrParse, err)
		}
		if obj.Prompts == nil {
			return nil, fmt.Errorf(`%w: JSON object must contain a "prompts" array`, ErrParse)
		}
		prompts = *obj.Prompts

	default:
		return nil, fmt.Errorf("%w: unknown input format %q", ErrParse, format)
	}

	records := make([]PromptRecord, 0, len(prompts))
	for _, p := range prompts {
		text := strings.TrimSpace(p)
		if text == "" {
			continue
		}
		records = append(records, PromptRecord{Index: len(records), Text: text})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no prompts found in input", ErrParse)
	}

	return records, nil
}
