package batch

import (
	"sort"
	"time"
)

// ItemResult pairs a prompt record's index with its outcome and the wall
// time its execution took.
type ItemResult struct {
	RecordIndex int               `json:"record_index"`
	Outcome     GenerationOutcome `json:"outcome"`
	DurationMS  int64             `json:"duration_ms"`
}

// BatchResult is the ordered result set of a batch run: one entry per
// submitted prompt record, sorted by record index regardless of completion
// order.
type BatchResult []ItemResult

// BatchSummary holds the aggregate counters of a batch run. It is derived
// from the result set and recomputable from it at any time.
type BatchSummary struct {
	Total             int   `json:"total"`
	Succeeded         int   `json:"succeeded"`
	ContentFiltered   int   `json:"content_filtered"`
	Failed            int   `json:"failed"`
	TotalInputTokens  int   `json:"total_input_tokens"`
	TotalOutputTokens int   `json:"total_output_tokens"`
	WallClockMS       int64 `json:"wall_clock_ms"`
}

// Finalize collects the unordered outcomes of a run into a result set
// ordered by record index plus summary counters computed in one pass. It is
// a pure function of its input and holds no hidden state: calling it twice
// on the same outcomes yields identical results.
func Finalize(items []ItemResult, wallClock time.Duration) (BatchResult, BatchSummary) {
	result := make(BatchResult, len(items))
	copy(result, items)
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordIndex < result[j].RecordIndex
	})

	summary := BatchSummary{
		Total:       len(result),
		WallClockMS: wallClock.Milliseconds(),
	}
	for _, item := range result {
		switch item.Outcome.Status {
		case StatusSucceeded:
			summary.Succeeded++
			summary.TotalInputTokens += item.Outcome.InputTokens
			summary.TotalOutputTokens += item.Outcome.OutputTokens
		case StatusContentFiltered:
			summary.ContentFiltered++
		case StatusFailed:
			summary.Failed++
		}
	}

	return result, summary
}
