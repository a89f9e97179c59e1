package batch

import "errors"

// Common errors returned by the batch package
var (
	// ErrParse is returned when the prompt input is malformed or resolves
	// to an empty prompt list. It is fatal and aborts before any dispatch.
	ErrParse = errors.New("failed to parse prompt input")

	// ErrConfig is returned when run options fail validation. It is fatal
	// and aborts before any dispatch.
	ErrConfig = errors.New("invalid batch run configuration")
)
