package batch

import "context"

// GenerationPort is the single abstracted operation the engine calls per
// prompt. It serves as the boundary between the engine and the remote
// generation service, following the hexagonal architecture pattern.
//
// Implementations must never return a Go error past this boundary: every
// failure mode (timeout, transport error, non-2xx status, malformed response
// body, explicit content-policy payload) is translated into the Failure or
// ContentFiltered outcome variant before returning. The scheduler applies
// the per-call timeout through ctx; an implementation that observes ctx
// expiry reports Failure with ErrorKindTimeout.
type GenerationPort interface {
	Generate(ctx context.Context, req GenerationRequest) GenerationOutcome
}

// Progress is an incremental completion event emitted by the scheduler
// after each record finishes. The engine emits these as a side channel and
// never blocks on a slow consumer.
type Progress struct {
	Completed int
	Total     int
	LastIndex int
}
