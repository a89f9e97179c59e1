// Package config handles configuration loading, validation, and
// persistence from its three sources (built-in defaults, the YAML config
// file under ~/.genai-bot, and GENAI_-prefixed environment variables).
// Environment variables take precedence over the file, the file over
// defaults. It provides type-safe access to settings needed by the CLI and
// the batch engine while keeping configuration details separate from
// business logic.
package config
