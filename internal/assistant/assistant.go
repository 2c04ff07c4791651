// Package assistant turns source code into cleaned code and prose
// explanations through a single LLM provider.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agenthands/codecleaner/internal/config"
	"github.com/agenthands/codecleaner/internal/llm"
	"github.com/agenthands/codecleaner/internal/model"
	"github.com/agenthands/codecleaner/internal/sanitize"
	"go.uber.org/zap"
)

type Assistant struct {
	LLM     llm.LLMClient
	Prompts config.Prompts

	provider          string
	missingCredential bool
	logger            *zap.Logger
}

// New wraps an existing client. When cfg has no API key and the provider
// needs one, every call fails with a MissingCredential error and client is
// never used.
func New(cfg config.LLMConfig, prompts config.Prompts, client llm.LLMClient, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		LLM:               client,
		Prompts:           prompts,
		provider:          cfg.Provider,
		missingCredential: llm.RequiresAPIKey(cfg.Provider) && cfg.APIKey == "",
		logger:            logger,
	}
}

// NewFromConfig builds the provider client from cfg. No client is created
// when the credential is missing.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig, prompts config.Prompts, logger *zap.Logger) (*Assistant, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := New(cfg, prompts, nil, logger)
	if a.missingCredential {
		logger.Warn("No API key configured; cleaning and explanation are disabled",
			zap.String("provider", cfg.Provider))
		return a, nil
	}

	client, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	a.LLM = client
	return a, nil
}

// Close releases the provider client when it holds resources.
func (a *Assistant) Close() error {
	if c, ok := a.LLM.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// CleanCode asks the model to clean source and strips any fence around the
// answer.
func (a *Assistant) CleanCode(ctx context.Context, source string) (string, error) {
	out, err := a.generate(ctx, "clean", a.Prompts.Clean, source)
	if err != nil {
		return "", err
	}

	cleaned := sanitize.Sanitize(out)
	if cleaned == "" {
		return "", errEmptyResponse()
	}
	return cleaned, nil
}

// Explain asks the model to describe code written in language.
func (a *Assistant) Explain(ctx context.Context, code, language string) (string, error) {
	return a.generate(ctx, "explain", a.Prompts.Explain, language, code)
}

// generate fills tmpl with args and performs exactly one model call.
func (a *Assistant) generate(ctx context.Context, op, tmpl string, args ...any) (string, error) {
	if a.missingCredential || a.LLM == nil {
		return "", model.NewError(model.KindMissingCredential,
			"API key not found. Set gemini_api_key in .streamlit/secrets.toml or the GEMINI_API_KEY environment variable", nil)
	}

	prompt := fmt.Sprintf(tmpl, args...)

	start := time.Now()
	out, err := a.LLM.Generate(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return "", errEmptyResponse()
		}
		a.logger.Warn("LLM call failed",
			zap.String("op", op),
			zap.String("provider", a.provider),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", model.NewError(model.KindServiceCallFailed, "exception during model call", err)
	}

	if strings.TrimSpace(out) == "" {
		return "", errEmptyResponse()
	}

	a.logger.Debug("LLM call completed",
		zap.String("op", op),
		zap.Duration("elapsed", elapsed),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(out)))
	return out, nil
}

func errEmptyResponse() error {
	return model.NewError(model.KindEmptyModelResponse, "model returned no content", nil)
}
