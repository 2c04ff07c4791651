package config

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePrompts(t *testing.T) {
	tests := []struct {
		name    string
		clean   string
		explain string
		wantErr string
	}{
		{name: "defaults", clean: DefaultCleanPrompt, explain: DefaultExplainPrompt},
		{name: "escaped percent", clean: "Keep 100%% of behaviour:\n%s", explain: "%s at 50%%:\n%s"},
		{name: "bare percent in clean", clean: "Make it 100% faster:\n%s", explain: DefaultExplainPrompt, wantErr: "prompts.clean"},
		{name: "missing verb in clean", clean: "Clean this code.", explain: DefaultExplainPrompt, wantErr: "expected 1 formatting verb(s), found 0"},
		{name: "one verb in explain", clean: DefaultCleanPrompt, explain: "Explain:\n%s", wantErr: "prompts.explain"},
		{name: "trailing percent", clean: "%s\n%", explain: DefaultExplainPrompt, wantErr: "trailing %"},
		{name: "argument index", clean: DefaultCleanPrompt, explain: "%[2]s in %[1]s", wantErr: "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Prompts = Prompts{Clean: tt.clean, Explain: tt.explain}

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEscapedPercentRendersLiterally(t *testing.T) {
	cfg := Default()
	cfg.Prompts.Clean = "Keep 100%% of behaviour:\n%s"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Keep 100% of behaviour:\nx", fmt.Sprintf(cfg.Prompts.Clean, "x"))
}

func TestLoadRejectsBadPromptTemplate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[prompts]
clean = "Make it 100% faster: %s"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompts.clean")
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCleanPrompt, cfg.Prompts.Clean)
	assert.Equal(t, DefaultExplainPrompt, cfg.Prompts.Explain)
}
