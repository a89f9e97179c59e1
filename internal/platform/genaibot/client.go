package genaibot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/genai-bot/genai-cli/internal/batch"
)

// contentPolicyReason is the reason string the API uses to flag a
// content-policy rejection inside a 400 error payload.
const contentPolicyReason = "Content policy violation"

// Client talks to a deployed GenAI Bot API. It implements
// batch.GenerationPort: Generate never returns a Go error, every failure
// mode becomes a typed outcome.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the API at endpoint. The timeout bounds
// requests made outside a batch run; inside a run the scheduler's per-call
// context governs.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("API endpoint cannot be empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger.With("component", "genaibot_client"),
	}, nil
}

// generateRequest is the wire shape of a generation call.
type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	UserID      string  `json:"user_id"`
}

// responseMetadata is the metadata block of a successful generation.
type responseMetadata struct {
	InputTokens         int    `json:"input_tokens"`
	OutputTokens        int    `json:"output_tokens"`
	ResponseTimeMS      int64  `json:"response_time_ms"`
	ModelID             string `json:"model_id"`
	UserID              string `json:"user_id"`
	ContentFilterStatus string `json:"content_filter_status"`
	MockMode            bool   `json:"mock_mode"`
}

// generateResponse is the wire shape of a successful generation.
type generateResponse struct {
	GeneratedText string           `json:"generated_text"`
	Metadata      responseMetadata `json:"metadata"`
}

// errorResponse is the wire shape of an API error payload, including
// content-policy rejections.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details struct {
		Reason    string `json:"reason"`
		Severity  string `json:"severity"`
		UserID    string `json:"user_id"`
		Timestamp string `json:"timestamp"`
	} `json:"details"`
}

// Generate submits one prompt to the /generate endpoint and maps the result
// into a GenerationOutcome.
func (c *Client) Generate(ctx context.Context, req batch.GenerationRequest) batch.GenerationOutcome {
	body, err := json.Marshal(generateRequest{
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		UserID:      req.UserID,
	})
	if err != nil {
		return batch.FailureOutcome(batch.ErrorKindMalformedResponse,
			fmt.Sprintf("failed to encode request: %v", err))
	}

	url := c.baseURL + "/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return batch.FailureOutcome(batch.ErrorKindTransport,
			fmt.Sprintf("failed to build request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "sending generation request",
		"url", url,
		"max_tokens", req.MaxTokens,
		"user_id", req.UserID)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		kind := classifyTransportError(err)
		c.logger.WarnContext(ctx, "generation request failed", "kind", kind, "error", err)
		return batch.FailureOutcome(kind, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var ok generateResponse
		if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
			return batch.FailureOutcome(batch.ErrorKindMalformedResponse,
				fmt.Sprintf("invalid JSON response: %v", err))
		}
		return batch.SuccessOutcome(
			ok.GeneratedText,
			ok.Metadata.InputTokens,
			ok.Metadata.OutputTokens,
			ok.Metadata.ResponseTimeMS,
			ok.Metadata.ModelID,
			ok.Metadata.MockMode,
		)

	case resp.StatusCode == http.StatusBadRequest:
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return batch.FailureOutcome(batch.ErrorKindMalformedResponse,
				fmt.Sprintf("invalid JSON error payload: %v", err))
		}
		if apiErr.Details.Reason == contentPolicyReason {
			c.logger.InfoContext(ctx, "content policy rejection",
				"severity", apiErr.Details.Severity,
				"user_id", req.UserID)
			return batch.FilteredOutcome(apiErr.Details.Reason, batch.ParseSeverity(apiErr.Details.Severity))
		}
		return batch.FailureOutcome(batch.ErrorKindServerError, errorText(apiErr, resp.StatusCode))

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return batch.FailureOutcome(batch.ErrorKindAuth, c.decodeErrorText(resp))

	case resp.StatusCode == http.StatusTooManyRequests:
		return batch.FailureOutcome(batch.ErrorKindRateLimited, c.decodeErrorText(resp))

	default:
		return batch.FailureOutcome(batch.ErrorKindServerError, c.decodeErrorText(resp))
	}
}

// decodeErrorText extracts a human-readable message from an error response
// body, falling back to the HTTP status when the body is empty or opaque.
func (c *Client) decodeErrorText(resp *http.Response) string {
	var apiErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return errorText(apiErr, resp.StatusCode)
}

func errorText(apiErr errorResponse, status int) string {
	switch {
	case apiErr.Error != "" && apiErr.Message != "":
		return apiErr.Error + ": " + apiErr.Message
	case apiErr.Error != "":
		return apiErr.Error
	case apiErr.Message != "":
		return apiErr.Message
	default:
		return fmt.Sprintf("HTTP %d", status)
	}
}

// classifyTransportError maps a client-side request error to an error kind.
// Context expiry counts as a timeout: an in-flight call abandoned by the
// scheduler is recorded as such.
func classifyTransportError(err error) batch.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return batch.ErrorKindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return batch.ErrorKindTimeout
	}
	return batch.ErrorKindTransport
}
