// Package batch implements the batch generation engine: parsing prompt
// collections into ordered records, dispatching them to a bounded pool of
// workers through a shared pacing gate, collecting per-prompt outcomes
// independent of completion order, and writing the durable result artifacts.
// The remote generation service is abstracted behind the GenerationPort
// interface so the engine never depends on a concrete transport.
package batch
