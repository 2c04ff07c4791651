//go:build integration

package assistant

import (
	"context"
	"testing"

	"github.com/agenthands/codecleaner/internal/config"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveCleanAndExplain(t *testing.T) {
	_ = godotenv.Load("../../.env")

	cfg := config.Default()
	cfg.ApplyEnv()
	require.NoError(t, cfg.ResolveAPIKey())
	if cfg.LLM.APIKey == "" {
		t.Skip("Skipping integration test: no API key configured")
	}

	ctx := context.Background()
	a, err := NewFromConfig(ctx, cfg.LLM, cfg.Prompts, zap.NewNop())
	require.NoError(t, err)

	cleaned, err := a.CleanCode(ctx, "def add(a,b):\n  return a+b")
	require.NoError(t, err)
	assert.NotEmpty(t, cleaned)
	assert.NotContains(t, cleaned, "```")
	t.Logf("Cleaned: %s", cleaned)

	explanation, err := a.Explain(ctx, cleaned, "python")
	require.NoError(t, err)
	assert.NotEmpty(t, explanation)
	t.Logf("Explanation: %s", explanation)
}
