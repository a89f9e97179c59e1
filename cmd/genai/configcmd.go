package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/config"
	"github.com/genai-bot/genai-cli/internal/format"
)

// configCmd groups configuration management commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set and persist a configuration value",
	Long: `Set a configuration value and save it to the config file.

Examples:
  genai config set api_endpoint https://your-api.amazonaws.com/Prod
  genai config set default_max_tokens 1500
  genai config set batch.max_workers 5`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the generation service",
	RunE:  runConfigTest,
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configTestCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println(format.Heading("Current Configuration"))
	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Println(format.KV(format.TitleKey(key), value))
	}
	fmt.Println()
	fmt.Println(format.KV("Config File", configPath()))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := cfg.Get(args[0])
	if err != nil {
		return fmt.Errorf("%w; use 'genai config show' to list keys", err)
	}
	fmt.Printf("%s: %v\n", args[0], value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(cfg, configPath()); err != nil {
		return err
	}
	fmt.Println(format.Success(fmt.Sprintf("Configuration updated: %s = %s", key, value)))
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	client, err := newServiceClient()
	if err != nil {
		return err
	}

	fmt.Println(format.KV("Testing connection to", cfg.APIEndpoint))
	fmt.Println("Sending test request...")

	outcome := generateOnce(cmd.Context(), client, batch.GenerationRequest{
		Prompt:      "Hello, this is a test message",
		MaxTokens:   50,
		Temperature: cfg.DefaultTemperature,
		UserID:      cfg.DefaultUserID,
	})

	if !outcome.Succeeded() {
		fmt.Println(format.Error("Connection failed"))
		switch outcome.ErrorKind {
		case batch.ErrorKindAuth:
			fmt.Println("This might be an authentication or permission issue")
		case batch.ErrorKindServerError:
			fmt.Println("This appears to be a server-side issue")
		case batch.ErrorKindTransport, batch.ErrorKindTimeout:
			fmt.Println("Check if your API endpoint URL is correct and reachable")
		}
		fmt.Println("\nTroubleshooting:")
		fmt.Println("1. Verify your API endpoint with 'genai config show'")
		fmt.Println("2. Check if the generation service is deployed")
		return outcomeError(outcome)
	}

	fmt.Println(format.Success("Connection successful!"))
	if outcome.MockMode {
		fmt.Println(format.Warn("Service is running in mock mode"))
	} else {
		fmt.Println("Real AI responses are enabled")
	}
	fmt.Println(format.KV("Response Time", fmt.Sprintf("%dms", outcome.LatencyMS)))
	return nil
}
