package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/genai-bot/genai-cli/internal/format"
	"github.com/genai-bot/genai-cli/internal/usage"
)

var (
	usageUserID       string
	usageStatsDays    int
	usageReportDays   int
	usageOutputFormat string
	usageReportFile   string
)

// usageCmd groups usage analytics commands.
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Usage statistics and analytics",
}

var usageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics for a time window",
	Long: `Show usage statistics for a user over a number of days.

Examples:
  genai usage stats
  genai usage stats --user-id john_doe --days 30
  genai usage stats --format json`,
	RunE: runUsageStats,
}

var usageSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a quick 7-day usage summary",
	RunE:  runUsageSummary,
}

var usageReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a detailed markdown usage report",
	Long: `Generate a markdown usage report across 1-day, 7-day, and N-day windows.

Examples:
  genai usage report --days 30
  genai usage report --output usage_report.md`,
	RunE: runUsageReport,
}

func init() {
	for _, c := range []*cobra.Command{usageStatsCmd, usageSummaryCmd, usageReportCmd} {
		c.Flags().StringVarP(&usageUserID, "user-id", "u", "", "user ID (defaults to configured user)")
	}
	usageStatsCmd.Flags().IntVarP(&usageStatsDays, "days", "d", 7, "number of days to analyze")
	usageStatsCmd.Flags().StringVarP(&usageOutputFormat, "format", "f", "text", "output format: text or json")
	usageReportCmd.Flags().IntVarP(&usageReportDays, "days", "d", 30, "number of days to analyze")
	usageReportCmd.Flags().StringVarP(&usageReportFile, "output", "o", "", "output file for the report")

	usageCmd.AddCommand(usageStatsCmd, usageSummaryCmd, usageReportCmd)
	rootCmd.AddCommand(usageCmd)
}

func usageUser() string {
	if usageUserID != "" {
		return usageUserID
	}
	return cfg.DefaultUserID
}

func runUsageStats(cmd *cobra.Command, args []string) error {
	client, err := newServiceClient()
	if err != nil {
		return err
	}

	stats, err := client.GetUsageStats(cmd.Context(), usageUser(), usageStatsDays)
	if err != nil {
		return fmt.Errorf("fetching usage stats: %w", err)
	}

	if usageOutputFormat == "json" {
		body, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(body))
		return nil
	}

	fmt.Println(format.Stats(*stats))
	return nil
}

func runUsageSummary(cmd *cobra.Command, args []string) error {
	client, err := newServiceClient()
	if err != nil {
		return err
	}

	stats, err := client.GetUsageStats(cmd.Context(), usageUser(), 7)
	if err != nil {
		return fmt.Errorf("fetching usage stats: %w", err)
	}

	fmt.Println(format.Heading("Quick Summary for " + stats.UserID))
	fmt.Println(format.KV("Total Requests (7 days)", stats.TotalRequests))
	fmt.Println(format.KV("Input Tokens", stats.TotalInputTokens))
	fmt.Println(format.KV("Output Tokens", stats.TotalOutputTokens))
	fmt.Println(format.KV("Avg Response Time", fmt.Sprintf("%dms", stats.AverageResponseTimeMS)))
	fmt.Println(format.KV("Filter Events", stats.ContentFilterEvents))
	if stats.Status == "active" {
		fmt.Println(format.Success("Status: Active"))
	} else {
		fmt.Println(format.Warn("Status: " + stats.Status))
	}
	return nil
}

func runUsageReport(cmd *cobra.Command, args []string) error {
	client, err := newServiceClient()
	if err != nil {
		return err
	}

	user := usageUser()
	periods := reportPeriods(usageReportDays)

	fmt.Println("Generating usage report...")
	var windows []usage.Window
	for _, days := range periods {
		fmt.Printf("  Fetching %d day statistics...\n", days)
		stats, err := client.GetUsageStats(cmd.Context(), user, days)
		if err != nil {
			appLogger.Warn("skipping report window", "days", days, "error", err)
			continue
		}
		windows = append(windows, usage.Window{Days: days, Stats: *stats})
	}
	if len(windows) == 0 {
		return fmt.Errorf("no data available for report generation")
	}

	report := usage.BuildReport(user, windows, time.Now())
	if usageReportFile == "" {
		fmt.Println(report)
		return nil
	}
	if err := os.WriteFile(usageReportFile, []byte(report), 0o644); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	fmt.Println(format.Success("Report saved to " + usageReportFile))
	return nil
}

// reportPeriods returns the distinct stat windows for an N-day report: the
// 1-day and 7-day baselines plus the requested period, without duplicates.
func reportPeriods(days int) []int {
	periods := []int{1}
	if days > 7 {
		periods = append(periods, 7)
	}
	if days > 1 {
		periods = append(periods, days)
	}
	return periods
}
