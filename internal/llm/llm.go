// Package llm defines the provider-neutral interface for text generation.
// Handlers speak this interface only; the concrete backend (a local
// Ollama daemon or the Gemini API) is chosen by configuration at startup.
package llm

import (
	"context"
	"time"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Options tunes a single generation. Nil fields leave the provider's
// defaults in place.
type Options struct {
	// Temperature controls randomness, typically 0..2.
	Temperature *float64 `json:"temperature,omitempty"`
	// TopP is the nucleus sampling threshold, 0..1.
	TopP *float64 `json:"top_p,omitempty"`
	// NumPredict caps the number of generated tokens.
	NumPredict *int `json:"num_predict,omitempty"`
	// NumCtx sets the context window size. Providers without a
	// per-request window ignore it.
	NumCtx *int `json:"num_ctx,omitempty"`
}

// GenerateRequest is a single-prompt completion request.
type GenerateRequest struct {
	// Model overrides the configured default model when non-empty.
	Model string `json:"model"`
	// Prompt is the text to complete.
	Prompt string `json:"prompt"`
	// System optionally steers the model's behavior.
	System  string  `json:"system,omitempty"`
	Options Options `json:"options,omitempty"`
}

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a multi-turn conversation request.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Options  Options   `json:"options,omitempty"`
}

// Chunk is one piece of a streamed response. For generate calls Content
// holds the text delta; for chat calls it is the assistant message
// delta. The final chunk has Done set and empty content.
type Chunk struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	Done      bool      `json:"done"`
}

// Completion is the aggregate result of a non-streamed call.
type Completion struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
}

// ModelInfo describes one model a provider can serve.
type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
	Size       int64     `json:"size,omitempty"`
}

// StreamFunc receives chunks as they arrive. Returning an error stops
// the stream and propagates the error to the caller.
type StreamFunc func(chunk Chunk) error

// Provider is a text generation backend.
type Provider interface {
	// Name identifies the backend ("ollama", "gemini").
	Name() string

	// Generate runs a single-prompt completion to completion.
	Generate(ctx context.Context, req GenerateRequest) (*Completion, error)

	// GenerateStream runs a single-prompt completion, delivering chunks
	// through fn as they arrive.
	GenerateStream(ctx context.Context, req GenerateRequest, fn StreamFunc) error

	// Chat runs a multi-turn conversation to completion.
	Chat(ctx context.Context, req ChatRequest) (*Completion, error)

	// ChatStream runs a multi-turn conversation, delivering chunks
	// through fn as they arrive.
	ChatStream(ctx context.Context, req ChatRequest, fn StreamFunc) error

	// ListModels returns the models the backend can serve.
	ListModels(ctx context.Context) ([]ModelInfo, error)
}
