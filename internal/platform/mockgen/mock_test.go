package mockgen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genai-bot/genai-cli/internal/batch"
)

func TestGenerate_SyntheticResponse(t *testing.T) {
	g := &Generator{}
	outcome := g.Generate(context.Background(), batch.GenerationRequest{
		Prompt:      "write a poem",
		MaxTokens:   100,
		Temperature: 0.7,
		UserID:      "tester",
	})

	require.True(t, outcome.Succeeded())
	assert.True(t, outcome.MockMode)
	assert.Equal(t, ModelID, outcome.ModelID)
	assert.Contains(t, outcome.Text, "write a poem")
}

func TestGenerate_TimeoutDuringSimulatedLatency(t *testing.T) {
	g := &Generator{Latency: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	outcome := g.Generate(ctx, batch.GenerationRequest{Prompt: "slow"})

	require.True(t, outcome.Failed())
	assert.Equal(t, batch.ErrorKindTimeout, outcome.ErrorKind)
}
