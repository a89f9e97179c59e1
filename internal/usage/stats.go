package usage

// DayStats is the per-day activity breakdown inside a stats window.
type DayStats struct {
	Date     string `json:"date"`
	Requests int    `json:"requests"`
	Tokens   int    `json:"tokens"`
}

// Stats is one usage-analytics window for a single user, as reported by the
// generation service.
type Stats struct {
	UserID                string     `json:"user_id"`
	PeriodDays            int        `json:"period_days"`
	TotalRequests         int        `json:"total_requests"`
	TotalInputTokens      int        `json:"total_input_tokens"`
	TotalOutputTokens     int        `json:"total_output_tokens"`
	AverageResponseTimeMS int        `json:"average_response_time_ms"`
	ContentFilterEvents   int        `json:"content_filter_events"`
	Status                string     `json:"status"`
	LastRequest           string     `json:"last_request"`
	RequestsByDay         []DayStats `json:"requests_by_day,omitempty"`
}

// TotalTokens returns the combined input and output token count.
func (s Stats) TotalTokens() int {
	return s.TotalInputTokens + s.TotalOutputTokens
}
