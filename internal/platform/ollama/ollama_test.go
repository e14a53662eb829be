package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/llm"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(config.LLMConfig{
		OllamaBaseURL: server.URL,
		ModelName:     "llama3",
	}, nil)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a base URL", func(t *testing.T) {
		t.Parallel()
		_, err := New(config.LLMConfig{}, nil)
		assert.ErrorIs(t, err, llm.ErrInvalidConfig)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()
		p, err := New(config.LLMConfig{OllamaBaseURL: "http://localhost:11434/"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:11434", p.baseURL)
	})
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("non-streamed completion", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)

			var payload generatePayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "llama3", payload.Model)
			assert.Equal(t, "hello", payload.Prompt)
			assert.False(t, payload.Stream)

			_, _ = w.Write([]byte(`{"model":"llama3","response":"hi there","done":true}`))
		})

		got, err := p.Generate(context.Background(), llm.GenerateRequest{Prompt: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hi there", got.Content)
		assert.Equal(t, "llama3", got.Model)
	})

	t.Run("empty prompt rejected before any call", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("daemon should not be called")
		})
		_, err := p.Generate(context.Background(), llm.GenerateRequest{})
		assert.ErrorIs(t, err, llm.ErrEmptyPrompt)
	})

	t.Run("request model overrides the default", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			var payload generatePayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "mistral", payload.Model)
			_, _ = w.Write([]byte(`{"model":"mistral","response":"ok","done":true}`))
		})
		_, err := p.Generate(context.Background(), llm.GenerateRequest{Prompt: "x", Model: "mistral"})
		require.NoError(t, err)
	})

	t.Run("options are forwarded", func(t *testing.T) {
		t.Parallel()
		temp := 0.2
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			var payload generatePayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, 0.2, payload.Options["temperature"])
			_, _ = w.Write([]byte(`{"response":"ok","done":true}`))
		})
		_, err := p.Generate(context.Background(), llm.GenerateRequest{
			Prompt:  "x",
			Options: llm.Options{Temperature: &temp},
		})
		require.NoError(t, err)
	})

	t.Run("daemon error line", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"out of memory"}`))
		})
		_, err := p.Generate(context.Background(), llm.GenerateRequest{Prompt: "x"})
		assert.ErrorIs(t, err, llm.ErrGenerationFailed)
		assert.Contains(t, err.Error(), "out of memory")
	})

	t.Run("unknown model maps to model not found", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model \"nope\" not found"}`))
		})
		_, err := p.Generate(context.Background(), llm.GenerateRequest{Prompt: "x"})
		assert.ErrorIs(t, err, llm.ErrModelNotFound)
	})
}

func TestGenerateStream(t *testing.T) {
	t.Parallel()

	t.Run("chunks arrive in order and stop at done", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			var payload generatePayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.True(t, payload.Stream)

			w.Header().Set("Content-Type", "application/x-ndjson")
			_, _ = w.Write([]byte(`{"model":"llama3","response":"hel","done":false}` + "\n"))
			_, _ = w.Write([]byte(`{"model":"llama3","response":"lo","done":false}` + "\n"))
			_, _ = w.Write([]byte(`{"model":"llama3","response":"","done":true}` + "\n"))
		})

		var chunks []llm.Chunk
		err := p.GenerateStream(context.Background(), llm.GenerateRequest{Prompt: "hi"}, func(c llm.Chunk) error {
			chunks = append(chunks, c)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, "hel", chunks[0].Content)
		assert.Equal(t, "lo", chunks[1].Content)
		assert.True(t, chunks[2].Done)
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json}\n"))
			_, _ = w.Write([]byte(`{"response":"ok","done":true}` + "\n"))
		})

		var got string
		err := p.GenerateStream(context.Background(), llm.GenerateRequest{Prompt: "hi"}, func(c llm.Chunk) error {
			got += c.Content
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	})

	t.Run("error line aborts the stream", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":"partial","done":false}` + "\n"))
			_, _ = w.Write([]byte(`{"error":"gpu fell over"}` + "\n"))
		})

		err := p.GenerateStream(context.Background(), llm.GenerateRequest{Prompt: "hi"}, func(c llm.Chunk) error {
			return nil
		})
		assert.ErrorIs(t, err, llm.ErrGenerationFailed)
	})

	t.Run("stream ending without done is invalid", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":"partial","done":false}` + "\n"))
		})

		err := p.GenerateStream(context.Background(), llm.GenerateRequest{Prompt: "hi"}, func(c llm.Chunk) error {
			return nil
		})
		assert.ErrorIs(t, err, llm.ErrInvalidResponse)
	})

	t.Run("callback error propagates", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":"x","done":false}` + "\n"))
			_, _ = w.Write([]byte(`{"response":"","done":true}` + "\n"))
		})

		wantErr := context.Canceled
		err := p.GenerateStream(context.Background(), llm.GenerateRequest{Prompt: "hi"}, func(c llm.Chunk) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestChat(t *testing.T) {
	t.Parallel()

	t.Run("non-streamed chat uses the message content", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/chat", r.URL.Path)

			var payload chatPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Len(t, payload.Messages, 2)
			assert.Equal(t, llm.RoleSystem, payload.Messages[0].Role)

			_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"sure"},"done":true}`))
		})

		got, err := p.Chat(context.Background(), llm.ChatRequest{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: "be brief"},
				{Role: llm.RoleUser, Content: "hello"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "sure", got.Content)
	})

	t.Run("empty message list rejected", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("daemon should not be called")
		})
		_, err := p.Chat(context.Background(), llm.ChatRequest{})
		assert.ErrorIs(t, err, llm.ErrEmptyPrompt)
	})
}

func TestListModels(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"models":[
			{"name":"llama3:latest","size":4661224676},
			{"name":"mistral:7b","size":4109865159}
		]}`))
	})

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "llama3:latest", models[0].Name)
	assert.EqualValues(t, 4661224676, models[0].Size)
}
