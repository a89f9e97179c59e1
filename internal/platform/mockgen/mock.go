// Package mockgen provides an offline generation port that returns
// synthetic responses flagged mock_mode, mirroring the behavior of the bot
// API when its model backend is disabled. It is useful for dry-running
// batches and for demos without network access.
package mockgen

import (
	"context"
	"fmt"
	"time"

	"github.com/genai-bot/genai-cli/internal/batch"
)

// ModelID identifies synthetic responses in outcomes and artifacts.
const ModelID = "mock"

// Generator implements batch.GenerationPort with deterministic synthetic
// text. The zero value is usable.
type Generator struct {
	// Latency is an optional artificial delay per call, useful for
	// exercising pacing and concurrency behavior.
	Latency time.Duration
}

// Generate returns a synthetic response for the prompt. It honors ctx while
// simulating latency and reports a timeout failure if the deadline expires
// first, like a real port would.
func (g *Generator) Generate(ctx context.Context, req batch.GenerationRequest) batch.GenerationOutcome {
	start := time.Now()

	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return batch.FailureOutcome(batch.ErrorKindTimeout, ctx.Err().Error())
		case <-timer.C:
		}
	}

	text := fmt.Sprintf("[mock response] You asked: %q. Enable the model backend for real generations.", req.Prompt)
	outputTokens := len(text) / 4

	return batch.SuccessOutcome(
		text,
		len(req.Prompt)/4,
		outputTokens,
		time.Since(start).Milliseconds(),
		ModelID,
		true,
	)
}
