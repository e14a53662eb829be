package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/llm"
)

// GenerateTextRequest is the request body for single-prompt generation.
type GenerateTextRequest struct {
	llm.GenerateRequest
	Stream bool `json:"stream"`
}

// ChatTextRequest is the request body for multi-turn chat.
type ChatTextRequest struct {
	llm.ChatRequest
	Stream bool `json:"stream"`
}

// LLMHandler proxies text generation to the configured provider.
// Non-streamed calls get the usual envelope; streamed calls emit
// newline-delimited JSON chunks as the provider produces them, since an
// envelope cannot wrap a body that is still being generated.
type LLMHandler struct {
	provider llm.Provider
}

// NewLLMHandler creates a new LLMHandler with the given provider.
func NewLLMHandler(provider llm.Provider) *LLMHandler {
	return &LLMHandler{provider: provider}
}

// Generate handles POST /api/llm/generate.
func (h *LLMHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if req.Stream {
		h.streamResponse(w, r, func(fn llm.StreamFunc) error {
			return h.provider.GenerateStream(r.Context(), req.GenerateRequest, fn)
		})
		return
	}

	completion, err := h.provider.Generate(r.Context(), req.GenerateRequest)
	if err != nil {
		h.respondProviderError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, completion)
}

// Chat handles POST /api/llm/chat.
func (h *LLMHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if req.Stream {
		h.streamResponse(w, r, func(fn llm.StreamFunc) error {
			return h.provider.ChatStream(r.Context(), req.ChatRequest, fn)
		})
		return
	}

	completion, err := h.provider.Chat(r.Context(), req.ChatRequest)
	if err != nil {
		h.respondProviderError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, completion)
}

// Models handles GET /api/llm/models.
func (h *LLMHandler) Models(w http.ResponseWriter, r *http.Request) {
	models, err := h.provider.ListModels(r.Context())
	if err != nil {
		h.respondProviderError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"provider": h.provider.Name(),
		"models":   models,
	})
}

// streamResponse runs a streaming call, writing one JSON chunk per line
// and flushing after each so clients see tokens as they are generated.
// Errors before the first chunk get a normal error envelope; once
// streaming has begun the connection is simply closed.
func (h *LLMHandler) streamResponse(w http.ResponseWriter, r *http.Request, run func(llm.StreamFunc) error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Streaming not supported")
		return
	}

	enc := json.NewEncoder(w)
	started := false

	err := run(func(chunk llm.Chunk) error {
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := enc.Encode(chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if !started {
			h.respondProviderError(w, r, err)
			return
		}
		slog.Error("stream aborted", "error", err, "path", r.URL.Path)
	}
}

// respondProviderError maps provider errors onto the envelope codes.
func (h *LLMHandler) respondProviderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, llm.ErrEmptyPrompt):
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Prompt is required")
	case errors.Is(err, llm.ErrModelNotFound):
		shared.RespondError(w, r, http.StatusNotFound, shared.CodeNotFound, "Model not found")
	case errors.Is(err, llm.ErrContentBlocked):
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Content blocked by safety filters")
	default:
		slog.Error("llm provider call failed", "error", err, "provider", h.provider.Name(), "path", r.URL.Path)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Text generation failed")
	}
}
