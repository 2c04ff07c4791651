package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Secrets mirrors the secrets file layout. Only the API key is read.
type Secrets struct {
	GeminiAPIKey string `toml:"gemini_api_key"`
}

// LoadSecrets reads the secrets file. A missing file yields empty secrets.
func LoadSecrets(path string) (Secrets, error) {
	var s Secrets
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read secrets file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse secrets file '%s': %w", path, err)
	}
	return s, nil
}

// ResolveAPIKey fills c.LLM.APIKey from the first non-empty source:
// secrets file, config file, GEMINI_API_KEY, LLM_API_KEY.
// It leaves the key empty when no source has one; callers report that
// lazily as a missing credential.
func (c *Config) ResolveAPIKey() error {
	secrets, err := LoadSecrets(c.Server.SecretsPath)
	if err != nil {
		return err
	}

	for _, candidate := range []string{
		secrets.GeminiAPIKey,
		c.LLM.APIKey,
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("LLM_API_KEY"),
	} {
		if candidate != "" {
			c.LLM.APIKey = candidate
			return nil
		}
	}
	return nil
}
