// Package format renders human-readable command output. All styling lives
// here so command logic stays free of presentation concerns.
package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/usage"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Heading renders a bold section heading with an underline rule.
func Heading(text string) string {
	return headingStyle.Render(text) + "\n" + strings.Repeat("=", len(text))
}

// Success renders a positive status line.
func Success(text string) string { return successStyle.Render("✔ " + text) }

// Error renders a failure status line.
func Error(text string) string { return errorStyle.Render("✘ " + text) }

// Warn renders a cautionary status line.
func Warn(text string) string { return warnStyle.Render("! " + text) }

// KV renders one labeled value line.
func KV(label string, value any) string {
	return fmt.Sprintf("%s %v", labelStyle.Render(label+":"), value)
}

// TitleKey turns a snake_case configuration or metadata key into a
// display label ("default_max_tokens" -> "Default Max Tokens").
func TitleKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '.' })
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Summary renders the aggregate counters of a finished batch run.
func Summary(s batch.BatchSummary) string {
	lines := []string{
		Heading("Batch Processing Complete"),
		KV("Total", s.Total),
		successStyle.Render(fmt.Sprintf("Succeeded: %d", s.Succeeded)),
	}
	if s.Failed > 0 {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Failed: %d", s.Failed)))
	} else {
		lines = append(lines, KV("Failed", s.Failed))
	}
	if s.ContentFiltered > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("Content Filtered: %d", s.ContentFiltered)))
	}
	lines = append(lines,
		KV("Input Tokens", s.TotalInputTokens),
		KV("Output Tokens", s.TotalOutputTokens),
		KV("Wall Clock", fmt.Sprintf("%dms", s.WallClockMS)),
	)
	return strings.Join(lines, "\n")
}

// Stats renders one usage-analytics window.
func Stats(s usage.Stats) string {
	lines := []string{
		Heading(fmt.Sprintf("Usage Statistics for %s", s.UserID)),
		KV("Period", fmt.Sprintf("%d days", s.PeriodDays)),
		KV("Total Requests", s.TotalRequests),
		KV("Total Input Tokens", s.TotalInputTokens),
		KV("Total Output Tokens", s.TotalOutputTokens),
		KV("Average Response Time", fmt.Sprintf("%dms", s.AverageResponseTimeMS)),
		KV("Content Filter Events", s.ContentFilterEvents),
		KV("Status", titleOrUnknown(s.Status)),
		KV("Last Request", valueOrNA(s.LastRequest)),
	}
	if len(s.RequestsByDay) > 0 {
		lines = append(lines, "", headingStyle.Render("Daily Breakdown:"))
		for _, day := range s.RequestsByDay {
			lines = append(lines, fmt.Sprintf("  %s: %d requests, %d tokens", day.Date, day.Requests, day.Tokens))
		}
	}
	return strings.Join(lines, "\n")
}

// Metadata renders the response details of a successful generation.
func Metadata(o batch.GenerationOutcome) string {
	lines := []string{
		"--- Response Details ---",
		KV("Model Id", o.ModelID),
		KV("Input Tokens", o.InputTokens),
		KV("Output Tokens", o.OutputTokens),
		KV("Latency", fmt.Sprintf("%dms", o.LatencyMS)),
	}
	if o.MockMode {
		lines = append(lines, Warn("Mock mode - enable the model backend for real AI responses"))
	}
	return strings.Join(lines, "\n")
}

func titleOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
