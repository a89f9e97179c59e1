package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Keys returns the settable configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Default().flatten()))
	for key := range Default().flatten() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a single configuration key.
func (c *Config) Get(key string) (any, error) {
	value, ok := c.flatten()[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return value, nil
}

// Set parses and assigns a single configuration value by key, then
// revalidates the whole configuration so an out-of-range value is rejected
// before it can be persisted.
func (c *Config) Set(key, value string) error {
	prev := *c

	switch key {
	case "api_endpoint":
		c.APIEndpoint = value
	case "backend":
		c.Backend = value
	case "default_user_id":
		c.DefaultUserID = value
	case "output_format":
		c.OutputFormat = value
	case "log_level":
		c.LogLevel = value
	case "gemini.api_key":
		c.Gemini.APIKey = value
	case "gemini.model":
		c.Gemini.Model = value
	case "default_max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
		}
		c.DefaultMaxTokens = n
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
		}
		c.TimeoutSeconds = n
	case "batch.max_workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
		}
		c.Batch.MaxWorkers = n
	case "default_temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidConfig, key)
		}
		c.DefaultTemperature = f
	case "batch.delay":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidConfig, key)
		}
		c.Batch.DelaySeconds = f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}
	return nil
}
