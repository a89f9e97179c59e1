package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/format"
)

// statusCmd probes the service and shows quick configuration info.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check API status and show quick information",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println(format.Heading("GenAI Bot CLI Status"))
	fmt.Println(format.KV("API Endpoint", cfg.APIEndpoint))
	fmt.Println(format.KV("Backend", cfg.Backend))
	fmt.Println(format.KV("User ID", cfg.DefaultUserID))

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	fmt.Println("\nTesting API connection...")
	if !client.HealthCheck(cmd.Context()) {
		fmt.Println(format.Error("API connection failed"))
		fmt.Println("Run 'genai config test' for detailed diagnostics")
		return nil
	}
	fmt.Println(format.Success("API is accessible"))

	stats, err := client.GetUsageStats(cmd.Context(), cfg.DefaultUserID, 7)
	if err != nil {
		appLogger.Warn("usage stats unavailable", "error", err)
		return nil
	}
	fmt.Println(format.KV("Requests (7 days)", stats.TotalRequests))
	fmt.Println(format.KV("Total Tokens", stats.TotalTokens()))
	return nil
}
