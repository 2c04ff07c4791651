package assistant

import (
	"context"
)

type MockLLMClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

type MockClosingClient struct {
	MockLLMClient
	Closed   int
	CloseErr error
}

func (m *MockClosingClient) Close() error {
	m.Closed++
	return m.CloseErr
}
