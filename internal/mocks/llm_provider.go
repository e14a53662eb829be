package mocks

import (
	"context"
	"time"

	"github.com/yolo-life/yolo-api/internal/llm"
)

// MockProvider implements llm.Provider for testing
type MockProvider struct {
	NameValue string

	GenerateFn       func(ctx context.Context, req llm.GenerateRequest) (*llm.Completion, error)
	GenerateStreamFn func(ctx context.Context, req llm.GenerateRequest, fn llm.StreamFunc) error
	ChatFn           func(ctx context.Context, req llm.ChatRequest) (*llm.Completion, error)
	ChatStreamFn     func(ctx context.Context, req llm.ChatRequest, fn llm.StreamFunc) error
	ListModelsFn     func(ctx context.Context) ([]llm.ModelInfo, error)
}

var _ llm.Provider = (*MockProvider)(nil)

// Name implements the Provider interface
func (m *MockProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Generate implements the Provider interface
func (m *MockProvider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Completion, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return &llm.Completion{Model: req.Model, CreatedAt: time.Now().UTC(), Content: "ok"}, nil
}

// GenerateStream implements the Provider interface
func (m *MockProvider) GenerateStream(ctx context.Context, req llm.GenerateRequest, fn llm.StreamFunc) error {
	if m.GenerateStreamFn != nil {
		return m.GenerateStreamFn(ctx, req, fn)
	}
	if err := fn(llm.Chunk{Model: req.Model, Content: "ok"}); err != nil {
		return err
	}
	return fn(llm.Chunk{Model: req.Model, Done: true})
}

// Chat implements the Provider interface
func (m *MockProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.Completion, error) {
	if m.ChatFn != nil {
		return m.ChatFn(ctx, req)
	}
	return &llm.Completion{Model: req.Model, CreatedAt: time.Now().UTC(), Content: "ok"}, nil
}

// ChatStream implements the Provider interface
func (m *MockProvider) ChatStream(ctx context.Context, req llm.ChatRequest, fn llm.StreamFunc) error {
	if m.ChatStreamFn != nil {
		return m.ChatStreamFn(ctx, req, fn)
	}
	if err := fn(llm.Chunk{Model: req.Model, Content: "ok"}); err != nil {
		return err
	}
	return fn(llm.Chunk{Model: req.Model, Done: true})
}

// ListModels implements the Provider interface
func (m *MockProvider) ListModels(ctx context.Context) ([]llm.ModelInfo, error) {
	if m.ListModelsFn != nil {
		return m.ListModelsFn(ctx)
	}
	return []llm.ModelInfo{{Name: "mock-model"}}, nil
}
