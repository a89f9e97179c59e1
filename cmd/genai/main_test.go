package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/config"
)

func resetFlags() {
	batchMaxTokens = 0
	batchTemperature = -1
	batchUserID = ""
	batchMaxWorkers = 0
	batchDelay = -1
	genMaxTokens = 0
	genTemperature = -1
	genUserID = ""
}

func TestBatchRunOptionsDefaultsFromConfig(t *testing.T) {
	cfg = config.Default()
	resetFlags()

	opts := batchRunOptions()

	assert.Equal(t, 3, opts.MaxWorkers)
	assert.Equal(t, time.Second, opts.Delay)
	assert.Equal(t, 1000, opts.MaxTokens)
	assert.Equal(t, 0.7, opts.Temperature)
	assert.Equal(t, "cli_user", opts.UserID)
	assert.Equal(t, 30*time.Second, opts.RequestTimeout)
}

func TestBatchRunOptionsFlagOverrides(t *testing.T) {
	cfg = config.Default()
	resetFlags()
	batchMaxTokens = 500
	batchTemperature = 0
	batchUserID = "team_bot"
	batchMaxWorkers = 8
	batchDelay = 0.5

	opts := batchRunOptions()

	assert.Equal(t, 500, opts.MaxTokens)
	assert.Equal(t, 0.0, opts.Temperature, "explicit zero temperature overrides the default")
	assert.Equal(t, "team_bot", opts.UserID)
	assert.Equal(t, 8, opts.MaxWorkers)
	assert.Equal(t, 500*time.Millisecond, opts.Delay)
}

func TestGenerateRequestMergesDefaults(t *testing.T) {
	cfg = config.Default()
	resetFlags()
	genUserID = "alice"

	req := generateRequest("hello")

	assert.Equal(t, "hello", req.Prompt)
	assert.Equal(t, 1000, req.MaxTokens)
	assert.Equal(t, "alice", req.UserID)
}

func TestParseInputFileForcedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("[\"not json as lines\"]\n"), 0o644))

	records, err := parseInputFile(path, "lines")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `["not json as lines"]`, records[0].Text)
}

func TestParseInputFileUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi\n"), 0o644))

	_, err := parseInputFile(path, "yaml")
	assert.ErrorIs(t, err, batch.ErrConfig)
}

func TestParseInputFileMissing(t *testing.T) {
	_, err := parseInputFile(filepath.Join(t.TempDir(), "nope.txt"), "auto")
	assert.ErrorIs(t, err, batch.ErrParse)
}

func TestUsageDaysDefaultsPerCommand(t *testing.T) {
	statsFlag := usageStatsCmd.Flags().Lookup("days")
	require.NotNil(t, statsFlag)
	assert.Equal(t, "7", statsFlag.DefValue)
	assert.Equal(t, 7, usageStatsDays, "stats window must not inherit the report default")

	reportFlag := usageReportCmd.Flags().Lookup("days")
	require.NotNil(t, reportFlag)
	assert.Equal(t, "30", reportFlag.DefValue)
	assert.Equal(t, 30, usageReportDays)
}

func TestReportPeriods(t *testing.T) {
	cases := []struct {
		days int
		want []int
	}{
		{1, []int{1}},
		{5, []int{1, 5}},
		{7, []int{1, 7}},
		{30, []int{1, 7, 30}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reportPeriods(tc.days), "reportPeriods(%d)", tc.days)
	}
}

func TestCommandTreeRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"batch", "generate", "usage", "config", "status", "quick"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}
