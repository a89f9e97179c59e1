package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	runID := uuid.New()

	items := []ItemResult{
		{RecordIndex: 0, Outcome: SuccessOutcome("first text", 1, 2, 3, "m", false), DurationMS: 12},
		{RecordIndex: 1, Outcome: FailureOutcome(ErrorKindServerError, "boom"), DurationMS: 7},
		{RecordIndex: 2, Outcome: SuccessOutcome("third text", 4, 5, 6, "m", false), DurationMS: 9},
	}
	result, summary := Finalize(items, 2*time.Second)

	summaryPath, err := WriteArtifacts(dir, runID, result, summary)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFileName), summaryPath)

	// Successful records get 1-based, zero-padded result files.
	first, err := os.ReadFile(filepath.Join(dir, "result_0001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first text", string(first))

	third, err := os.ReadFile(filepath.Join(dir, "result_0003.txt"))
	require.NoError(t, err)
	assert.Equal(t, "third text", string(third))

	// Failed records produce no result file.
	_, err = os.Stat(filepath.Join(dir, "result_0002.txt"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var artifact struct {
		RunID   string       `json:"run_id"`
		Summary BatchSummary `json:"summary"`
		Results BatchResult  `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &artifact))

	assert.Equal(t, runID.String(), artifact.RunID)
	assert.Equal(t, summary, artifact.Summary)
	require.Len(t, artifact.Results, 3)
	assert.Equal(t, ErrorKindServerError, artifact.Results[1].Outcome.ErrorKind)
}

func TestWriteArtifacts_EmptyResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")

	summaryPath, err := WriteArtifacts(dir, uuid.New(), BatchResult{}, BatchSummary{})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SummaryFileName, entries[0].Name())
	assert.Equal(t, filepath.Join(dir, SummaryFileName), summaryPath)
}
