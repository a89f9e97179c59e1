package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/config"
	"github.com/genai-bot/genai-cli/internal/platform/gemini"
	"github.com/genai-bot/genai-cli/internal/platform/genaibot"
	"github.com/genai-bot/genai-cli/internal/platform/logger"
	"github.com/genai-bot/genai-cli/internal/platform/mockgen"
)

var (
	// Global flags
	cfgFile      string
	flagBackend  string
	flagLogLevel string

	// Initialized by the root PersistentPreRunE for every subcommand.
	cfg       *config.Config
	appLogger *slog.Logger
)

// rootCmd is the base command for the GenAI Bot CLI.
var rootCmd = &cobra.Command{
	Use:   "genai",
	Short: "Command-line client for the GenAI Bot text generation service",
	Long: `genai talks to a deployed GenAI Bot text generation service.

It supports single-prompt generation, concurrent batch processing with
rate pacing, usage analytics, and configuration management. Select the
generation backend with --backend (http, gemini, or mock).`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		appLogger = logger.Setup(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.genai-bot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "generation backend: http, gemini, or mock")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log verbosity: debug, info, warn, or error")
}

// requestTimeout returns the configured per-request timeout.
func requestTimeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// newGenerationPort builds the generation backend selected by configuration.
func newGenerationPort(ctx context.Context) (batch.GenerationPort, error) {
	switch cfg.Backend {
	case config.BackendMock:
		return &mockgen.Generator{}, nil
	case config.BackendGemini:
		return gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, appLogger)
	default:
		return genaibot.NewClient(cfg.APIEndpoint, requestTimeout(), appLogger)
	}
}

// newServiceClient builds an HTTP client for the deployed service. Usage
// analytics and health checks are only served by the HTTP backend.
func newServiceClient() (*genaibot.Client, error) {
	return genaibot.NewClient(cfg.APIEndpoint, requestTimeout(), appLogger)
}

// signalContext derives a context cancelled on SIGINT or SIGTERM so
// long-running commands shut down cleanly.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// generateOnce runs a single prompt through the configured backend with the
// configured per-request deadline.
func generateOnce(ctx context.Context, port batch.GenerationPort, req batch.GenerationRequest) batch.GenerationOutcome {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout())
	defer cancel()
	return port.Generate(callCtx, req)
}

// outcomeError converts a non-success outcome into a command error.
func outcomeError(o batch.GenerationOutcome) error {
	if o.Filtered() {
		return fmt.Errorf("content filtered (%s severity): %s", o.FilterSeverity, o.FilterReason)
	}
	return fmt.Errorf("generation failed (%s): %s", o.ErrorKind, o.ErrorMessage)
}
