package llm

import (
	"context"
	"testing"

	"github.com/agenthands/codecleaner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("openai", func(t *testing.T) {
		c, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", APIKey: "k", Model: "gpt-4o-mini"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &OpenAIClient{}, c)
	})

	t.Run("claude", func(t *testing.T) {
		c, err := NewClient(ctx, config.LLMConfig{Provider: "claude", APIKey: "k", Model: "claude-3-haiku"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &ClaudeClient{}, c)
	})

	t.Run("ollama goes through the openai client", func(t *testing.T) {
		c, err := NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &OpenAIClient{}, c)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewClient(ctx, config.LLMConfig{Provider: "bard"}, logger)
		assert.EqualError(t, err, "unsupported llm provider: bard")
	})
}

func TestRequiresAPIKey(t *testing.T) {
	assert.True(t, RequiresAPIKey("gemini"))
	assert.True(t, RequiresAPIKey(""))
	assert.True(t, RequiresAPIKey("openai"))
	assert.False(t, RequiresAPIKey("Ollama"))
}
