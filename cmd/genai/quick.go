package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/format"
)

// quickCmd is a shorthand for 'generate text' with configured defaults.
var quickCmd = &cobra.Command{
	Use:   "quick PROMPT",
	Short: "Quick text generation (shorthand for 'generate text')",
	Long: `Generate text from a prompt using configured defaults.

Example:
  genai quick "Write a haiku about coding"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuick,
}

func init() {
	rootCmd.AddCommand(quickCmd)
}

func runQuick(cmd *cobra.Command, args []string) error {
	port, err := newGenerationPort(cmd.Context())
	if err != nil {
		return err
	}

	outcome := generateOnce(cmd.Context(), port, batch.GenerationRequest{
		Prompt:      args[0],
		MaxTokens:   cfg.DefaultMaxTokens,
		Temperature: cfg.DefaultTemperature,
		UserID:      cfg.DefaultUserID,
	})
	if !outcome.Succeeded() {
		return outcomeError(outcome)
	}

	fmt.Println(outcome.Text)
	if outcome.MockMode {
		fmt.Println()
		fmt.Println(format.Warn("Mock mode - enable the model backend for real AI responses"))
	}
	return nil
}
