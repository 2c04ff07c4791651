package llm

import (
	"context"
	"errors"
)

// ErrNoContent is returned when the provider answered but the response held
// no text.
var ErrNoContent = errors.New("no response content")

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
