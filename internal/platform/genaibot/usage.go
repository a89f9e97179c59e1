package genaibot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/genai-bot/genai-cli/internal/batch"
	"github.com/genai-bot/genai-cli/internal/usage"
)

// GetUsageStats fetches one usage-analytics window for a user from the
// /usage/{user_id} endpoint.
func (c *Client) GetUsageStats(ctx context.Context, userID string, days int) (*usage.Stats, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	endpoint := c.baseURL + "/usage/" + url.PathEscape(userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage request: %w", err)
	}
	if days > 0 {
		q := httpReq.URL.Query()
		q.Set("days", strconv.Itoa(days))
		httpReq.URL.RawQuery = q.Encode()
	}

	c.logger.DebugContext(ctx, "fetching usage stats", "user_id", userID, "days", days)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("usage request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usage request failed: %s", c.decodeErrorText(resp))
	}

	var stats usage.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("invalid usage response: %w", err)
	}
	if stats.UserID == "" {
		stats.UserID = userID
	}

	return &stats, nil
}

// HealthCheck probes the API with a minimal generation request and reports
// whether it answered successfully.
func (c *Client) HealthCheck(ctx context.Context) bool {
	outcome := c.Generate(ctx, batch.GenerationRequest{
		Prompt:      "test",
		MaxTokens:   10,
		Temperature: 0.7,
		UserID:      "health_check",
	})
	return outcome.Succeeded()
}
