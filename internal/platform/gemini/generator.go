package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/genai-bot/genai-cli/internal/batch"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// Generator implements batch.GenerationPort against the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGenerator creates a Gemini-backed generation port.
func NewGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client: client,
		model:  model,
		logger: logger.With("component", "gemini_generator"),
	}, nil
}

// Generate submits one prompt to the Gemini API and maps the result into a
// GenerationOutcome.
func (g *Generator) Generate(ctx context.Context, req batch.GenerationRequest) batch.GenerationOutcome {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		Temperature:     genai.Ptr(float32(req.Temperature)),
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	latency := time.Since(start)

	if err != nil {
		kind := classifyError(err)
		g.logger.WarnContext(ctx, "Gemini API call failed", "kind", kind, "error", err)
		return batch.FailureOutcome(kind, err.Error())
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return batch.FailureOutcome(batch.ErrorKindMalformedResponse, "no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		g.logger.InfoContext(ctx, "generation blocked by safety filters", "user_id", req.UserID)
		return batch.FilteredOutcome("Content policy violation", batch.SeverityHigh)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return batch.FailureOutcome(batch.ErrorKindMalformedResponse, "empty content in response")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	var inputTokens, outputTokens int
	if resp.UsageMetadata != nil {
		inputTokens = int(resp.UsageMetadata.PromptTokenCount)
		outputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return batch.SuccessOutcome(
		text.String(),
		inputTokens,
		outputTokens,
		latency.Milliseconds(),
		g.model,
		false,
	)
}

// classifyError maps a Gemini client error to a per-item error kind.
func classifyError(err error) batch.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return batch.ErrorKindTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return batch.ErrorKindAuth
		case apiErr.Code == 429:
			return batch.ErrorKindRateLimited
		case apiErr.Code >= 500:
			return batch.ErrorKindServerError
		default:
			return batch.ErrorKindServerError
		}
	}

	return batch.ErrorKindTransport
}
