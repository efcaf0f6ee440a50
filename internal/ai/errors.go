// Package ai wraps the vendor generative API: structured plan generation,
// per-exercise image generation, and motivation text plus speech synthesis.
// Every operation is a single blocking round-trip; failures are converted
// once at the call site and never retried automatically.
package ai

import "errors"

var (
	// ErrSchemaViolation marks a model response that could not be parsed
	// into the expected plan structure. Surfaced to the user rather than
	// silently degraded.
	ErrSchemaViolation = errors.New("model response does not match the plan schema")

	// ErrImageGeneration marks a vendor-side image generation failure.
	// Callers do not retry automatically.
	ErrImageGeneration = errors.New("image generation failed")

	// ErrSpeechGeneration marks total failure of the motivation text stage:
	// every model in the fallback chain failed. A text success with a
	// failed audio stage is a partial success, not this error.
	ErrSpeechGeneration = errors.New("motivation text generation failed")
)
