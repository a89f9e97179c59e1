package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SummaryFileName is the name of the structured summary artifact written
// alongside the per-prompt result files.
const SummaryFileName = "batch_summary.json"

// summaryArtifact is the on-disk encoding of a finished batch run.
type summaryArtifact struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Summary     BatchSummary `json:"summary"`
	Results     BatchResult  `json:"results"`
}

// WriteArtifacts persists the durable result set of a run: one text file per
// successful prompt, named by 1-based zero-padded sequence number, plus a
// JSON summary file. It creates the output directory if needed and returns
// the path of the summary file.
func WriteArtifacts(dir string, runID uuid.UUID, result BatchResult, summary BatchSummary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	for _, item := range result {
		if !item.Outcome.Succeeded() {
			continue
		}
		name := fmt.Sprintf("result_%04d.txt", item.RecordIndex+1)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(item.Outcome.Text), 0o644); err != nil {
			return "", fmt.Errorf("failed to write result file %s: %w", path, err)
		}
	}

	artifact := summaryArtifact{
		RunID:       runID.String(),
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Results:     result,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode batch summary: %w", err)
	}

	summaryPath := filepath.Join(dir, SummaryFileName)
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary file %s: %w", summaryPath, err)
	}

	return summaryPath, nil
}
