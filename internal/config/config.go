package config

import (
	"os"
	"path/filepath"
)

// Backend selects which generation port implementation the CLI uses.
const (
	BackendHTTP   = "http"
	BackendGemini = "gemini"
	BackendMock   = "mock"
)

// Config holds all CLI configuration. It organizes settings into logical
// groups for better maintainability.
type Config struct {
	// APIEndpoint is the base URL of the deployed GenAI Bot API.
	APIEndpoint string `mapstructure:"api_endpoint" validate:"required,url"`

	// Backend selects the generation port: http, gemini, or mock.
	Backend string `mapstructure:"backend" validate:"required,oneof=http gemini mock"`

	// DefaultUserID tags requests for usage tracking.
	DefaultUserID string `mapstructure:"default_user_id" validate:"required"`

	// DefaultMaxTokens is the generation budget applied when a command
	// does not override it.
	DefaultMaxTokens int `mapstructure:"default_max_tokens" validate:"required,gt=0,lte=4000"`

	// DefaultTemperature is the sampling temperature applied when a
	// command does not override it.
	DefaultTemperature float64 `mapstructure:"default_temperature" validate:"gte=0,lte=2"`

	// OutputFormat selects the default rendering of command output.
	OutputFormat string `mapstructure:"output_format" validate:"required,oneof=text json"`

	// LogLevel controls structured log verbosity.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// TimeoutSeconds bounds each request to the generation service.
	TimeoutSeconds int `mapstructure:"timeout" validate:"required,gte=1,lte=300"`

	// Gemini configures the direct Gemini backend.
	Gemini GeminiConfig `mapstructure:"gemini"`

	// Batch holds the defaults for batch runs.
	Batch BatchConfig `mapstructure:"batch"`
}

// GeminiConfig contains settings for the direct Gemini generation backend.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Required only when the
	// gemini backend is selected.
	APIKey string `mapstructure:"api_key"`

	// Model is the Gemini model name.
	Model string `mapstructure:"model"`
}

// BatchConfig contains the default run parameters for batch processing.
type BatchConfig struct {
	// MaxWorkers bounds concurrent requests in a batch run.
	MaxWorkers int `mapstructure:"max_workers" validate:"gte=1,lte=64"`

	// DelaySeconds is the minimum spacing between successive requests
	// across the whole pool. Zero disables pacing.
	DelaySeconds float64 `mapstructure:"delay" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIEndpoint:        "https://2i9yquihz5.execute-api.us-east-2.amazonaws.com/Prod",
		Backend:            BackendHTTP,
		DefaultUserID:      "cli_user",
		DefaultMaxTokens:   1000,
		DefaultTemperature: 0.7,
		OutputFormat:       "text",
		LogLevel:           "info",
		TimeoutSeconds:     30,
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Batch: BatchConfig{
			MaxWorkers:   3,
			DelaySeconds: 1.0,
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.genai-bot/config.yaml. It falls back to the working directory when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".genai-bot", "config.yaml")
	}
	return filepath.Join(home, ".genai-bot", "config.yaml")
}
