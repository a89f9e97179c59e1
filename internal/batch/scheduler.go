package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
)

// RunOptions configures a single batch run. All values are validated before
// the scheduler starts; invalid values fail fast with ErrConfig, never
// mid-run.
type RunOptions struct {
	// MaxWorkers bounds the number of concurrently active executions.
	MaxWorkers int `validate:"gte=1"`

	// Delay is the minimum interval between successive dispatches across
	// the whole pool. Zero disables pacing.
	Delay time.Duration `validate:"gte=0"`

	// MaxTokens is the generation budget per request.
	MaxTokens int `validate:"gt=0"`

	// Temperature is the sampling temperature applied to every request.
	Temperature float64 `validate:"gte=0,lte=2"`

	// UserID tags every request for usage tracking.
	UserID string `validate:"required"`

	// RequestTimeout bounds each individual port call.
	RequestTimeout time.Duration `validate:"gt=0"`
}

// DefaultRunOptions returns run options with reasonable defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		MaxWorkers:     3,
		Delay:          time.Second,
		MaxTokens:      1000,
		Temperature:    0.7,
		UserID:         "cli_user",
		RequestTimeout: 30 * time.Second,
	}
}

var validate = validator.New()

// Validate checks the options against their constraints and wraps any
// violation in ErrConfig.
func (o RunOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// Runner dispatches prompt records to a bounded pool of workers, each
// invoking the generation port through a shared pacer, and collects the
// outcomes into an ordered result set.
type Runner struct {
	port   GenerationPort
	logger *slog.Logger
}

// NewRunner creates a Runner that executes batches against the given port.
func NewRunner(port GenerationPort, logger *slog.Logger) *Runner {
	return &Runner{
		port:   port,
		logger: logger.With("component", "batch_runner"),
	}
}

// Run executes one batch over the given records and returns the result set
// and summary. Workers claim records from a shared queue (no record is
// claimed twice), pass the pacer gate, and invoke the port with a per-call
// timeout. One worker's failure never halts its siblings: failures are
// recorded in that record's outcome and the run continues.
//
// Cancelling ctx stops dispatch of new work but lets in-flight calls finish
// or time out; outcomes completed before cancellation are preserved in the
// returned result, and Run reports the context error. Progress events are
// emitted to the progress channel after each completion with a non-blocking
// send, so a slow consumer can never back-pressure the workers; a nil
// channel disables progress reporting.
func (r *Runner) Run(
	ctx context.Context,
	records []PromptRecord,
	opts RunOptions,
	progress chan<- Progress,
) (BatchResult, BatchSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, BatchSummary{}, err
	}

	if len(records) == 0 {
		return BatchResult{}, BatchSummary{}, nil
	}

	workers := opts.MaxWorkers
	if workers > len(records) {
		workers = len(records)
	}

	// Pacing state never outlives a single run.
	pacer := NewPacer(opts.Delay)

	r.logger.Info("starting batch run",
		"records", len(records),
		"workers", workers,
		"delay", opts.Delay,
		"request_timeout", opts.RequestTimeout)

	start := time.Now()
	results := make(chan ItemResult, len(records))

	var next atomic.Int64
	var completed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.work(ctx, workerID, records, opts, pacer, results, &next, &completed, progress)
		}(i)
	}

	wg.Wait()
	close(results)

	items := make([]ItemResult, 0, len(records))
	for item := range results {
		items = append(items, item)
	}

	result, summary := Finalize(items, time.Since(start))

	r.logger.Info("batch run finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"content_filtered", summary.ContentFiltered,
		"failed", summary.Failed,
		"wall_clock_ms", summary.WallClockMS)

	return result, summary, ctx.Err()
}

// work is a single executor loop: claim the next unclaimed record, pass the
// pacing gate, call the port, record the outcome, repeat until the queue is
// exhausted or ctx is cancelled. Claims are an atomic fetch-and-increment
// over the pre-materialized, read-only record slice.
func (r *Runner) work(
	ctx context.Context,
	workerID int,
	records []PromptRecord,
	opts RunOptions,
	pacer *Pacer,
	results chan<- ItemResult,
	next *atomic.Int64,
	completed *atomic.Int64,
	progress chan<- Progress,
) {
	logger := r.logger.With("worker_id", workerID)

	for {
		// Cancellation is checked between claims; no new work is claimed
		// after it fires.
		if ctx.Err() != nil {
			logger.Debug("cancellation observed, worker exiting")
			return
		}

		idx := int(next.Add(1) - 1)
		if idx >= len(records) {
			return
		}
		record := records[idx]

		if err := pacer.Acquire(ctx); err != nil {
			// Cancelled while waiting for a dispatch slot. The record was
			// never dispatched, so no outcome is recorded for it.
			logger.Debug("cancelled during pacing", "record_index", record.Index)
			return
		}

		req := GenerationRequest{
			Prompt:      record.Text,
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
			UserID:      opts.UserID,
		}

		callCtx, cancel := context.WithTimeout(ctx, opts.RequestTimeout)
		callStart := time.Now()
		outcome := r.port.Generate(callCtx, req)
		duration := time.Since(callStart)
		cancel()

		results <- ItemResult{
			RecordIndex: record.Index,
			Outcome:     outcome,
			DurationMS:  duration.Milliseconds(),
		}

		done := int(completed.Add(1))
		logger.Debug("record completed",
			"record_index", record.Index,
			"status", outcome.Status,
			"duration_ms", duration.Milliseconds(),
			"completed", done,
			"total", len(records))

		if progress != nil {
			select {
			case progress <- Progress{Completed: done, Total: len(records), LastIndex: record.Index}:
			default:
				// Drop the event rather than block generation.
			}
		}
	}
}
