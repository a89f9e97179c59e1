package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(context.Background(), "key", DefaultModel, nil)
		assert.Error(t, err)
	})

	t.Run("empty api key", func(t *testing.T) {
		_, err := NewGenerator(context.Background(), "", DefaultModel, testLogger())
		assert.Error(t, err)
	})
}

func TestClassifyError_ContextExpiry(t *testing.T) {
	assert.Equal(t, "timeout", string(classifyError(context.DeadlineExceeded)))
	assert.Equal(t, "timeout", string(classifyError(context.Canceled)))
}
