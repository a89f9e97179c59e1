package batch

import "strings"

// OutcomeStatus represents the completion state of a single prompt.
type OutcomeStatus string

// Possible outcome status values
const (
	StatusSucceeded       OutcomeStatus = "succeeded"
	StatusContentFiltered OutcomeStatus = "content_filtered"
	StatusFailed          OutcomeStatus = "failed"
)

// ErrorKind classifies per-item generation failures. Per-item failures are
// recorded in the record's outcome and never abort the batch.
type ErrorKind string

// Error kinds a GenerationPort may surface
const (
	ErrorKindTimeout           ErrorKind = "timeout"
	ErrorKindTransport         ErrorKind = "transport"
	ErrorKindAuth              ErrorKind = "auth"
	ErrorKindRateLimited       ErrorKind = "rate_limited"
	ErrorKindServerError       ErrorKind = "server_error"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
)

// Severity grades a content-policy rejection.
type Severity string

// Content filter severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity normalizes a severity value from the wire. Unrecognized
// values are graded medium.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "high":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// GenerationRequest is the per-record request handed to a GenerationPort.
// It is derived from the record plus run-wide configuration and owned solely
// by the worker executing it.
type GenerationRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	UserID      string  `json:"user_id"`
}

// GenerationOutcome is the completion state of one prompt: exactly one of
// success, content-filtered, or failure. Use the constructors below; they
// guarantee the variant is never partially populated.
type GenerationOutcome struct {
	Status OutcomeStatus `json:"status"`

	// Success fields
	Text         string `json:"text,omitempty"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	LatencyMS    int64  `json:"latency_ms,omitempty"`
	ModelID      string `json:"model_id,omitempty"`
	MockMode     bool   `json:"mock_mode,omitempty"`

	// ContentFiltered fields
	FilterReason   string   `json:"filter_reason,omitempty"`
	FilterSeverity Severity `json:"filter_severity,omitempty"`

	// Failure fields
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// SuccessOutcome builds a succeeded outcome.
func SuccessOutcome(text string, inputTokens, outputTokens int, latencyMS int64, modelID string, mockMode bool) GenerationOutcome {
	return GenerationOutcome{
		Status:       StatusSucceeded,
		Text:         text,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		LatencyMS:    latencyMS,
		ModelID:      modelID,
		MockMode:     mockMode,
	}
}

// FilteredOutcome builds a content-filtered outcome. Content filtering is a
// distinct completion state, not an error: it requires no retry and counts
// separately in the batch summary.
func FilteredOutcome(reason string, severity Severity) GenerationOutcome {
	return GenerationOutcome{
		Status:         StatusContentFiltered,
		FilterReason:   reason,
		FilterSeverity: severity,
	}
}

// FailureOutcome builds a failed outcome with a classified error kind.
func FailureOutcome(kind ErrorKind, message string) GenerationOutcome {
	return GenerationOutcome{
		Status:       StatusFailed,
		ErrorKind:    kind,
		ErrorMessage: message,
	}
}

// Succeeded reports whether the outcome is the success variant.
func (o GenerationOutcome) Succeeded() bool { return o.Status == StatusSucceeded }

// Filtered reports whether the outcome is the content-filtered variant.
func (o GenerationOutcome) Filtered() bool { return o.Status == StatusContentFiltered }

// Failed reports whether the outcome is the failure variant.
func (o GenerationOutcome) Failed() bool { return o.Status == StatusFailed }
