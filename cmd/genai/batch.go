package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/format"
)

var (
	batchInput       string
	batchOutput      string
	batchFormat      string
	batchMaxTokens   int
	batchTemperature float64
	batchUserID      string
	batchMaxWorkers  int
	batchDelay       float64
)

// batchCmd groups batch processing commands.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch processing commands for multiple text generations",
}

// batchProcessCmd runs every prompt in an input file through the concurrent
// scheduler and writes per-result and summary artifacts.
var batchProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a file of prompts concurrently",
	Long: `Process every prompt in the input file through the generation service.

The input file may be plain text (one prompt per line), a JSON list of
strings, or a JSON object with a "prompts" key; the format is detected
automatically unless --input-format forces one. Results are written to the
output directory as result_NNNN.txt files plus a batch_summary.json
manifest. Per-prompt failures are recorded in the summary and never abort
the run; press Ctrl-C to stop early and keep completed results.`,
	RunE: runBatchProcess,
}

func init() {
	batchProcessCmd.Flags().StringVarP(&batchInput, "input", "i", "", "file containing prompts (required)")
	batchProcessCmd.Flags().StringVarP(&batchOutput, "output", "o", "./batch_output", "directory for result artifacts")
	batchProcessCmd.Flags().StringVar(&batchFormat, "input-format", "auto", "input format: auto, lines, json-list, or json-object")
	batchProcessCmd.Flags().IntVarP(&batchMaxTokens, "max-tokens", "t", 0, "maximum tokens per generation")
	batchProcessCmd.Flags().Float64Var(&batchTemperature, "temperature", -1, "sampling temperature (0.0-2.0)")
	batchProcessCmd.Flags().StringVarP(&batchUserID, "user-id", "u", "", "user ID for usage tracking")
	batchProcessCmd.Flags().IntVarP(&batchMaxWorkers, "max-workers", "w", 0, "maximum concurrent requests")
	batchProcessCmd.Flags().Float64VarP(&batchDelay, "delay", "d", -1, "minimum seconds between requests across all workers")
	_ = batchProcessCmd.MarkFlagRequired("input")

	batchCmd.AddCommand(batchProcessCmd)
	rootCmd.AddCommand(batchCmd)
}

// batchRunOptions merges configuration defaults with explicit flag overrides.
func batchRunOptions() batch.RunOptions {
	opts := batch.RunOptions{
		MaxWorkers:     cfg.Batch.MaxWorkers,
		Delay:          time.Duration(cfg.Batch.DelaySeconds * float64(time.Second)),
		MaxTokens:      cfg.DefaultMaxTokens,
		Temperature:    cfg.DefaultTemperature,
		UserID:         cfg.DefaultUserID,
		RequestTimeout: requestTimeout(),
	}
	if batchMaxTokens > 0 {
		opts.MaxTokens = batchMaxTokens
	}
	if batchTemperature >= 0 {
		opts.Temperature = batchTemperature
	}
	if batchUserID != "" {
		opts.UserID = batchUserID
	}
	if batchMaxWorkers > 0 {
		opts.MaxWorkers = batchMaxWorkers
	}
	if batchDelay >= 0 {
		opts.Delay = time.Duration(batchDelay * float64(time.Second))
	}
	return opts
}

func parseInputFile(path, forced string) ([]batch.PromptRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input file: %v", batch.ErrParse, err)
	}

	var inputFormat batch.InputFormat
	switch forced {
	case "auto", "":
		inputFormat = batch.DetectFormat(raw)
	case "lines":
		inputFormat = batch.FormatLines
	case "json-list":
		inputFormat = batch.FormatJSONList
	case "json-object":
		inputFormat = batch.FormatJSONObject
	default:
		return nil, fmt.Errorf("%w: unknown input format %q", batch.ErrConfig, forced)
	}

	return batch.ParsePrompts(raw, inputFormat)
}

func runBatchProcess(cmd *cobra.Command, args []string) error {
	records, err := parseInputFile(batchInput, batchFormat)
	if err != nil {
		return err
	}

	port, err := newGenerationPort(cmd.Context())
	if err != nil {
		return err
	}

	opts := batchRunOptions()
	fmt.Printf("%s\n", format.Heading(fmt.Sprintf("Processing %d prompts", len(records))))
	fmt.Printf("%s\n", format.KV("Workers", opts.MaxWorkers))
	fmt.Printf("%s\n", format.KV("Delay", opts.Delay))
	fmt.Printf("%s\n\n", format.KV("Output", batchOutput))

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	progress := make(chan batch.Progress, len(records))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			fmt.Printf("\r[%d/%d] completed (last: prompt %d)", p.Completed, p.Total, p.LastIndex+1)
		}
		fmt.Println()
	}()

	runner := batch.NewRunner(port, appLogger)
	result, summary, runErr := runner.Run(ctx, records, opts, progress)
	close(progress)
	<-done

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	runID := uuid.New()
	summaryPath, err := batch.WriteArtifacts(batchOutput, runID, result, summary)
	if err != nil {
		return err
	}

	fmt.Println(format.Summary(summary))
	fmt.Println(format.KV("Summary File", summaryPath))
	if runErr != nil {
		fmt.Println(format.Warn(fmt.Sprintf("run interrupted after %d of %d prompts; completed results were kept", summary.Total, len(records))))
	}
	return nil
}
