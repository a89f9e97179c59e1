package config

import "errors"

// Common errors returned by the config package
var (
	// ErrInvalidConfig is returned when configuration values fail
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownKey is returned when a get/set operation names a
	// configuration key that does not exist.
	ErrUnknownKey = errors.New("unknown configuration key")
)
