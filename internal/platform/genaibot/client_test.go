package genaibot

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genai-bot/genai-cli/internal/batch"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() batch.GenerationRequest {
	return batch.GenerationRequest{
		Prompt:      "write a haiku",
		MaxTokens:   100,
		Temperature: 0.7,
		UserID:      "tester",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, 5*time.Second, testLogger())
	require.NoError(t, err)
	return client
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	_, err := NewClient("", time.Second, testLogger())
	assert.Error(t, err)
}

func TestGenerate_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "write a haiku", req.Prompt)
		assert.Equal(t, 100, req.MaxTokens)
		assert.Equal(t, "tester", req.UserID)

		_ = json.NewEncoder(w).Encode(generateResponse{
			GeneratedText: "code flows like water",
			Metadata: responseMetadata{
				InputTokens:    4,
				OutputTokens:   6,
				ResponseTimeMS: 321,
				ModelID:        "bedrock-claude",
				MockMode:       true,
			},
		})
	})

	outcome := client.Generate(context.Background(), testRequest())

	require.True(t, outcome.Succeeded())
	assert.Equal(t, "code flows like water", outcome.Text)
	assert.Equal(t, 4, outcome.InputTokens)
	assert.Equal(t, 6, outcome.OutputTokens)
	assert.Equal(t, int64(321), outcome.LatencyMS)
	assert.Equal(t, "bedrock-claude", outcome.ModelID)
	assert.True(t, outcome.MockMode)
}

func TestGenerate_ContentPolicyViolation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"error": "Bad request",
			"message": "Your prompt was rejected",
			"details": {"reason": "Content policy violation", "severity": "HIGH"}
		}`))
	})

	outcome := client.Generate(context.Background(), testRequest())

	require.True(t, outcome.Filtered())
	assert.Equal(t, "Content policy violation", outcome.FilterReason)
	assert.Equal(t, batch.SeverityHigh, outcome.FilterSeverity)
}

func TestGenerate_PlainBadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Bad request", "message": "prompt too long"}`))
	})

	outcome := client.Generate(context.Background(), testRequest())

	require.True(t, outcome.Failed())
	assert.Equal(t, batch.ErrorKindServerError, outcome.ErrorKind)
	assert.Equal(t, "Bad request: prompt too long", outcome.ErrorMessage)
}

func TestGenerate_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   batch.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, batch.ErrorKindAuth},
		{"forbidden", http.StatusForbidden, batch.ErrorKindAuth},
		{"rate limited", http.StatusTooManyRequests, batch.ErrorKindRateLimited},
		{"server error", http.StatusInternalServerError, batch.ErrorKindServerError},
		{"bad gateway", http.StatusBadGateway, batch.ErrorKindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": "nope"}`))
			})

			outcome := client.Generate(context.Background(), testRequest())

			require.True(t, outcome.Failed())
			assert.Equal(t, tt.want, outcome.ErrorKind)
			assert.Equal(t, "nope", outcome.ErrorMessage)
		})
	}
}

func TestGenerate_MalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text": `))
	})

	outcome := client.Generate(context.Background(), testRequest())

	require.True(t, outcome.Failed())
	assert.Equal(t, batch.ErrorKindMalformedResponse, outcome.ErrorKind)
}

func TestGenerate_TimeoutOutcome(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(generateResponse{GeneratedText: "late"})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	outcome := client.Generate(ctx, testRequest())

	require.True(t, outcome.Failed())
	assert.Equal(t, batch.ErrorKindTimeout, outcome.ErrorKind)
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client, err := NewClient(endpoint, time.Second, testLogger())
	require.NoError(t, err)

	outcome := client.Generate(context.Background(), testRequest())

	require.True(t, outcome.Failed())
	assert.Equal(t, batch.ErrorKindTransport, outcome.ErrorKind)
}

func TestGetUsageStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/usage/team_bot", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("days"))

		_, _ = w.Write([]byte(`{
			"period_days": 30,
			"total_requests": 42,
			"total_input_tokens": 1000,
			"total_output_tokens": 2000,
			"average_response_time_ms": 180,
			"content_filter_events": 1,
			"status": "active",
			"requests_by_day": [{"date": "2025-06-01", "requests": 42, "tokens": 3000}]
		}`))
	})

	stats, err := client.GetUsageStats(context.Background(), "team_bot", 30)
	require.NoError(t, err)

	assert.Equal(t, "team_bot", stats.UserID)
	assert.Equal(t, 30, stats.PeriodDays)
	assert.Equal(t, 42, stats.TotalRequests)
	assert.Equal(t, 3000, stats.TotalTokens())
	require.Len(t, stats.RequestsByDay, 1)
	assert.Equal(t, "2025-06-01", stats.RequestsByDay[0].Date)
}

func TestGetUsageStats_DefaultWindowOmitsDaysParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("days"))
		_, _ = w.Write([]byte(`{"total_requests": 1}`))
	})

	_, err := client.GetUsageStats(context.Background(), "cli_user", 0)
	assert.NoError(t, err)
}

func TestGetUsageStats_Errors(t *testing.T) {
	t.Run("empty user", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := client.GetUsageStats(context.Background(), "", 7)
		assert.Error(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "storage unavailable"}`))
		})
		_, err := client.GetUsageStats(context.Background(), "cli_user", 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage unavailable")
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(generateResponse{GeneratedText: "ok"})
		})
		assert.True(t, client.HealthCheck(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		assert.False(t, client.HealthCheck(context.Background()))
	})
}
