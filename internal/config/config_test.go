package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[llm]
provider = "openai"
model = "gpt-4o-mini"

[server]
port = "9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, DefaultCleanPrompt, cfg.Prompts.Clean)
	assert.Equal(t, DefaultExplainPrompt, cfg.Prompts.Explain)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[llm\nprovider=")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LLM_MODEL", "claude-3-haiku")
	t.Setenv("LLM_BASE_URL", "http://localhost:1234")
	t.Setenv("PORT", "7000")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-haiku", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:1234", cfg.LLM.BaseURL)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("secrets file wins over env", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "from-env")
		cfg := Default()
		cfg.Server.SecretsPath = writeFile(t, t.TempDir(), ".streamlit/secrets.toml", `gemini_api_key = "from-secrets"`)

		require.NoError(t, cfg.ResolveAPIKey())
		assert.Equal(t, "from-secrets", cfg.LLM.APIKey)
	})

	t.Run("falls back to env", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "from-env")
		cfg := Default()
		cfg.Server.SecretsPath = filepath.Join(t.TempDir(), "missing.toml")

		require.NoError(t, cfg.ResolveAPIKey())
		assert.Equal(t, "from-env", cfg.LLM.APIKey)
	})

	t.Run("no source leaves key empty", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("LLM_API_KEY", "")
		cfg := Default()
		cfg.Server.SecretsPath = ""

		require.NoError(t, cfg.ResolveAPIKey())
		assert.Empty(t, cfg.LLM.APIKey)
	})

	t.Run("broken secrets file is reported", func(t *testing.T) {
		cfg := Default()
		cfg.Server.SecretsPath = writeFile(t, t.TempDir(), "secrets.toml", "gemini_api_key = ")

		assert.Error(t, cfg.ResolveAPIKey())
	})
}
