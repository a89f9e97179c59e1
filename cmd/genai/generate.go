package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/format"
)

var (
	genMaxTokens    int
	genTemperature  float64
	genUserID       string
	genOutputFormat string
	genSaveFile     string

	genFileInput  string
	genFileOutput string
)

// generateCmd groups single-prompt generation commands.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Text generation commands",
}

var generateTextCmd = &cobra.Command{
	Use:   "text PROMPT",
	Short: "Generate text from a single prompt",
	Long: `Generate text from a single prompt.

Examples:
  genai generate text "Write a poem about AI"
  genai generate text "Explain quantum computing" --max-tokens 500 --temperature 0.3
  genai generate text "Write a story" --save story.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateText,
}

var generateFileCmd = &cobra.Command{
	Use:   "file",
	Short: "Generate text from prompts in a file, one at a time",
	Long: `Generate text sequentially from a file with one prompt per line.

Each successful generation is saved to output_NNN.txt in the output
directory. Unlike batch process, prompts run one at a time.`,
	RunE: runGenerateFile,
}

var generateInteractiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive generation session",
	RunE:  runGenerateInteractive,
}

func init() {
	generateTextCmd.Flags().IntVarP(&genMaxTokens, "max-tokens", "t", 0, "maximum tokens to generate")
	generateTextCmd.Flags().Float64Var(&genTemperature, "temperature", -1, "sampling temperature (0.0-2.0)")
	generateTextCmd.Flags().StringVarP(&genUserID, "user-id", "u", "", "user ID for usage tracking")
	generateTextCmd.Flags().StringVarP(&genOutputFormat, "format", "f", "", "output format: text or json")
	generateTextCmd.Flags().StringVarP(&genSaveFile, "save", "s", "", "save generated text to file")

	generateFileCmd.Flags().StringVarP(&genFileInput, "file", "f", "", "file containing prompts, one per line (required)")
	generateFileCmd.Flags().StringVarP(&genFileOutput, "output-dir", "o", "./output", "output directory")
	generateFileCmd.Flags().IntVarP(&genMaxTokens, "max-tokens", "t", 0, "maximum tokens per generation")
	generateFileCmd.Flags().Float64Var(&genTemperature, "temperature", -1, "sampling temperature for all generations")
	generateFileCmd.Flags().StringVarP(&genUserID, "user-id", "u", "", "user ID for usage tracking")
	_ = generateFileCmd.MarkFlagRequired("file")

	generateInteractiveCmd.Flags().StringVarP(&genUserID, "user-id", "u", "", "user ID for usage tracking")

	generateCmd.AddCommand(generateTextCmd, generateFileCmd, generateInteractiveCmd)
	rootCmd.AddCommand(generateCmd)
}

// generateRequest merges configuration defaults with flag overrides for a
// single-prompt generation.
func generateRequest(prompt string) batch.GenerationRequest {
	req := batch.GenerationRequest{
		Prompt:      prompt,
		MaxTokens:   cfg.DefaultMaxTokens,
		Temperature: cfg.DefaultTemperature,
		UserID:      cfg.DefaultUserID,
	}
	if genMaxTokens > 0 {
		req.MaxTokens = genMaxTokens
	}
	if genTemperature >= 0 {
		req.Temperature = genTemperature
	}
	if genUserID != "" {
		req.UserID = genUserID
	}
	return req
}

func runGenerateText(cmd *cobra.Command, args []string) error {
	port, err := newGenerationPort(cmd.Context())
	if err != nil {
		return err
	}

	outcome := generateOnce(cmd.Context(), port, generateRequest(args[0]))
	if !outcome.Succeeded() {
		return outcomeError(outcome)
	}

	outputFormat := genOutputFormat
	if outputFormat == "" {
		outputFormat = cfg.OutputFormat
	}

	var rendered string
	if outputFormat == "json" {
		body, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		rendered = string(body)
		fmt.Println(rendered)
	} else {
		rendered = outcome.Text
		fmt.Println(outcome.Text)
		fmt.Println()
		fmt.Println(format.Metadata(outcome))
	}

	if genSaveFile != "" {
		if err := os.WriteFile(genSaveFile, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("saving output: %w", err)
		}
		fmt.Println()
		fmt.Println(format.Success("Generated text saved to " + genSaveFile))
	}
	return nil
}

func runGenerateFile(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(genFileInput)
	if err != nil {
		return fmt.Errorf("%w: reading prompt file: %v", batch.ErrParse, err)
	}
	records, err := batch.ParsePrompts(raw, batch.FormatLines)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(genFileOutput, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	port, err := newGenerationPort(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	fmt.Println(format.Heading(fmt.Sprintf("Processing %d prompts from %s", len(records), genFileInput)))

	var succeeded, failed int
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		fmt.Printf("Processing prompt %d/%d\n", rec.Index+1, len(records))

		outcome := generateOnce(ctx, port, generateRequest(rec.Text))
		if !outcome.Succeeded() {
			fmt.Println("  " + format.Error(outcomeError(outcome).Error()))
			failed++
			continue
		}

		name := filepath.Join(genFileOutput, fmt.Sprintf("output_%03d.txt", rec.Index+1))
		if err := os.WriteFile(name, []byte(outcome.Text), 0o644); err != nil {
			fmt.Println("  " + format.Error("saving: "+err.Error()))
			failed++
			continue
		}
		fmt.Println("  " + format.Success("Saved to "+name))
		succeeded++
	}

	fmt.Println()
	fmt.Println(format.Heading("File processing completed"))
	fmt.Println(format.Success(fmt.Sprintf("Successful: %d", succeeded)))
	if failed > 0 {
		fmt.Println(format.Error(fmt.Sprintf("Failed: %d", failed)))
	}
	fmt.Println(format.KV("Results", genFileOutput))
	return nil
}

func runGenerateInteractive(cmd *cobra.Command, args []string) error {
	port, err := newGenerationPort(cmd.Context())
	if err != nil {
		return err
	}

	userID := cfg.DefaultUserID
	if genUserID != "" {
		userID = genUserID
	}

	fmt.Println(format.Heading("GenAI Bot - Interactive Mode"))
	fmt.Println("Type 'quit' or 'exit' to leave, 'help' for commands, 'stats' for usage statistics.")
	fmt.Println()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return nil
		case "help":
			fmt.Println("Commands:")
			fmt.Println("  help   - Show this help")
			fmt.Println("  stats  - Show usage statistics")
			fmt.Println("  quit   - Exit interactive mode")
			continue
		case "stats":
			printSessionStats(ctx, userID)
			continue
		}

		req := generateRequest(line)
		req.UserID = userID
		outcome := generateOnce(ctx, port, req)
		if !outcome.Succeeded() {
			fmt.Println(format.Error(outcomeError(outcome).Error()))
			fmt.Println()
			continue
		}

		fmt.Printf("\nBot: %s\n", outcome.Text)
		if outcome.MockMode {
			fmt.Println(format.Warn("Mock mode - enable the model backend for real AI responses"))
		} else {
			fmt.Printf("(%d tokens, %dms)\n", outcome.OutputTokens, outcome.LatencyMS)
		}
		fmt.Println()

		if ctx.Err() != nil {
			fmt.Println("Goodbye!")
			return nil
		}
	}
}

// printSessionStats shows the 7-day usage window inside an interactive
// session. Stats come from the deployed service regardless of backend.
func printSessionStats(ctx context.Context, userID string) {
	client, err := newServiceClient()
	if err != nil {
		fmt.Println(format.Error("could not fetch stats: " + err.Error()))
		return
	}
	stats, err := client.GetUsageStats(ctx, userID, 7)
	if err != nil {
		fmt.Println(format.Error("could not fetch stats: " + err.Error()))
		return
	}
	fmt.Println(format.KV("Total Requests (7 days)", stats.TotalRequests))
	fmt.Println(format.KV("Total Tokens", stats.TotalTokens()))
}
