package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Load reads configuration from defaults, the YAML file at path (or the
// default location when path is empty), and GENAI_-prefixed environment
// variables, in increasing precedence. A missing config file is not an
// error; a malformed one is. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GENAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrInvalidConfig, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse configuration: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its constraints, including the
// cross-field rule that the gemini backend requires an API key.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Backend == BackendGemini && c.Gemini.APIKey == "" {
		return fmt.Errorf("%w: gemini backend requires gemini.api_key", ErrInvalidConfig)
	}
	return nil
}

// Save persists the configuration as YAML at path (or the default location
// when path is empty), creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range cfg.flatten() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range Default().flatten() {
		v.SetDefault(key, value)
	}
}

// flatten returns the configuration as viper-style dotted keys.
func (c *Config) flatten() map[string]any {
	return map[string]any{
		"api_endpoint":        c.APIEndpoint,
		"backend":             c.Backend,
		"default_user_id":     c.DefaultUserID,
		"default_max_tokens":  c.DefaultMaxTokens,
		"default_temperature": c.DefaultTemperature,
		"output_format":       c.OutputFormat,
		"log_level":           c.LogLevel,
		"timeout":             c.TimeoutSeconds,
		"gemini.api_key":      c.Gemini.APIKey,
		"gemini.model":        c.Gemini.Model,
		"batch.max_workers":   c.Batch.MaxWorkers,
		"batch.delay":         c.Batch.DelaySeconds,
	}
}
