package usage

import (
	"fmt"
	"strings"
	"time"
)

// Window pairs a stats window with the number of days it covers. Report
// windows are rendered in the order given.
type Window struct {
	Days  int
	Stats Stats
}

// BuildReport renders a markdown usage report for one user across the given
// windows. The last window is treated as the report period and feeds the
// executive summary and recommendations.
func BuildReport(userID string, windows []Window, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# GenAI Bot Usage Report\n\n")
	fmt.Fprintf(&b, "**User ID:** %s\n", userID)
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format("2006-01-02 15:04:05"))

	var latest *Window
	if len(windows) > 0 {
		latest = &windows[len(windows)-1]
		fmt.Fprintf(&b, "**Report Period:** %d days\n", latest.Days)
	}
	b.WriteString("\n")

	if latest != nil {
		s := latest.Stats
		b.WriteString("## Executive Summary\n\n")
		fmt.Fprintf(&b, "- **Total Requests:** %d\n", s.TotalRequests)
		fmt.Fprintf(&b, "- **Total Tokens Processed:** %d\n", s.TotalTokens())
		fmt.Fprintf(&b, "- **Average Response Time:** %dms\n", s.AverageResponseTimeMS)
		fmt.Fprintf(&b, "- **Content Filter Events:** %d\n", s.ContentFilterEvents)
		fmt.Fprintf(&b, "- **Account Status:** %s\n\n", titleCase(s.Status))
	}

	for _, w := range windows {
		s := w.Stats
		fmt.Fprintf(&b, "## %d Day Analysis\n\n", w.Days)
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		fmt.Fprintf(&b, "| Requests | %d |\n", s.TotalRequests)
		fmt.Fprintf(&b, "| Input Tokens | %d |\n", s.TotalInputTokens)
		fmt.Fprintf(&b, "| Output Tokens | %d |\n", s.TotalOutputTokens)
		fmt.Fprintf(&b, "| Avg Response Time | %dms |\n", s.AverageResponseTimeMS)
		fmt.Fprintf(&b, "| Filter Events | %d |\n\n", s.ContentFilterEvents)

		if len(s.RequestsByDay) > 0 {
			fmt.Fprintf(&b, "### Daily Activity (%d days)\n\n", w.Days)
			b.WriteString("| Date | Requests | Tokens |\n|------|----------|--------|\n")
			for _, day := range s.RequestsByDay {
				fmt.Fprintf(&b, "| %s | %d | %d |\n", day.Date, day.Requests, day.Tokens)
			}
			b.WriteString("\n")
		}
	}

	if latest != nil {
		s := latest.Stats
		b.WriteString("## Recommendations\n\n")
		if s.TotalRequests > 1000 {
			b.WriteString("- High usage detected - consider monitoring costs and implementing rate limiting\n")
		} else if s.TotalRequests < 10 {
			b.WriteString("- Low usage - consider promoting the service or checking integration\n")
		}
		if s.ContentFilterEvents > 0 {
			fmt.Fprintf(&b, "- %d content filter events detected - review input guidelines\n", s.ContentFilterEvents)
		}
		if s.AverageResponseTimeMS > 1000 {
			b.WriteString("- High response times - monitor API performance\n")
		}
		b.WriteString("- Regular monitoring recommended for optimal performance\n")
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
