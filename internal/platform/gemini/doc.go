// Package gemini implements the generation port directly against Google's
// Gemini API, for running batches without a deployed GenAI Bot endpoint.
// The same outcome contract applies: safety-filter finishes surface as
// content-filtered outcomes, everything else as classified failures.
package gemini
