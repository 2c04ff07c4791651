package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultProvider       = "gemini"
	DefaultModel          = "gemini-1.5-flash"
	DefaultPort           = "8080"
	DefaultMaxUploadBytes = 1 << 20
	DefaultSecretsPath    = ".streamlit/secrets.toml"
)

// Default prompt templates. Clean takes the raw source, Explain takes the
// language label followed by the cleaned code.
const (
	DefaultCleanPrompt = "Please clean, format, and optimize the following code. Focus on readability, best practices, and minor efficiency improvements. Provide only the cleaned code:\n\n```\n%s\n```"

	DefaultExplainPrompt = "Explain what this %s code does in simple terms:\n\n%s"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type Prompts struct {
	Clean   string `toml:"clean"`
	Explain string `toml:"explain"`
}

type ServerConfig struct {
	Port           string `toml:"port"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	SecretsPath    string `toml:"secrets_path"`
}

type Config struct {
	LLM     LLMConfig    `toml:"llm"`
	Prompts Prompts      `toml:"prompts"`
	Server  ServerConfig `toml:"server"`
}

// Default returns a configuration that talks to Gemini with the built-in prompts.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
		},
		Prompts: Prompts{
			Clean:   DefaultCleanPrompt,
			Explain: DefaultExplainPrompt,
		},
		Server: ServerConfig{
			Port:           DefaultPort,
			MaxUploadBytes: DefaultMaxUploadBytes,
			SecretsPath:    DefaultSecretsPath,
		},
	}
}

// Load reads a TOML file on top of the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.Prompts.Clean == "" {
		c.Prompts.Clean = def.Prompts.Clean
	}
	if c.Prompts.Explain == "" {
		c.Prompts.Explain = def.Prompts.Explain
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = def.Server.MaxUploadBytes
	}
	if c.Server.SecretsPath == "" {
		c.Server.SecretsPath = def.Server.SecretsPath
	}
}
