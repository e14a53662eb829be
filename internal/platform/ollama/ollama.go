// Package ollama implements llm.Provider against a local Ollama daemon's
// HTTP API.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/llm"
	"github.com/yolo-life/yolo-api/internal/platform/logger"
)

// maxLineSize bounds a single streamed JSON line. Ollama chunks are
// small, but a non-streamed response arrives as one line.
const maxLineSize = 10 * 1024 * 1024

// Provider talks to an Ollama daemon over HTTP.
type Provider struct {
	baseURL      string
	defaultModel string
	client       *http.Client
	logger       *slog.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New creates an Ollama-backed provider from the LLM configuration.
func New(cfg config.LLMConfig, log *slog.Logger) (*Provider, error) {
	if cfg.OllamaBaseURL == "" {
		return nil, fmt.Errorf("%w: ollama base URL cannot be empty", llm.ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.OllamaBaseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid ollama base URL: %v", llm.ErrInvalidConfig, err)
	}
	if log == nil {
		log = slog.Default()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 300 * time.Second
	}

	return &Provider{
		baseURL:      strings.TrimRight(cfg.OllamaBaseURL, "/"),
		defaultModel: cfg.ModelName,
		client:       &http.Client{Timeout: timeout},
		logger:       log.With(slog.String("component", "ollama")),
	}, nil
}

// Name implements llm.Provider.Name
func (p *Provider) Name() string { return "ollama" }

// Wire types for the daemon's /api endpoints.

type generatePayload struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type chatPayload struct {
	Model    string         `json:"model"`
	Messages []llm.Message  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type responseLine struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Message   *struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// content returns the text delta regardless of endpoint shape.
func (l *responseLine) content() string {
	if l.Message != nil {
		return l.Message.Content
	}
	return l.Response
}

func wireOptions(o llm.Options) map[string]any {
	opts := map[string]any{}
	if o.Temperature != nil {
		opts["temperature"] = *o.Temperature
	}
	if o.TopP != nil {
		opts["top_p"] = *o.TopP
	}
	if o.NumPredict != nil {
		opts["num_predict"] = *o.NumPredict
	}
	if o.NumCtx != nil {
		opts["num_ctx"] = *o.NumCtx
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func (p *Provider) model(requested string) string {
	if requested != "" {
		return requested
	}
	return p.defaultModel
}

// Generate implements llm.Provider.Generate
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Completion, error) {
	if req.Prompt == "" {
		return nil, llm.ErrEmptyPrompt
	}
	payload := generatePayload{
		Model:   p.model(req.Model),
		Prompt:  req.Prompt,
		System:  req.System,
		Stream:  false,
		Options: wireOptions(req.Options),
	}
	return p.complete(ctx, "/api/generate", payload)
}

// GenerateStream implements llm.Provider.GenerateStream
func (p *Provider) GenerateStream(ctx context.Context, req llm.GenerateRequest, fn llm.StreamFunc) error {
	if req.Prompt == "" {
		return llm.ErrEmptyPrompt
	}
	payload := generatePayload{
		Model:   p.model(req.Model),
		Prompt:  req.Prompt,
		System:  req.System,
		Stream:  true,
		Options: wireOptions(req.Options),
	}
	return p.stream(ctx, "/api/generate", payload, fn)
}

// Chat implements llm.Provider.Chat
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.Completion, error) {
	if len(req.Messages) == 0 {
		return nil, llm.ErrEmptyPrompt
	}
	payload := chatPayload{
		Model:    p.model(req.Model),
		Messages: req.Messages,
		Stream:   false,
		Options:  wireOptions(req.Options),
	}
	return p.complete(ctx, "/api/chat", payload)
}

// ChatStream implements llm.Provider.ChatStream
func (p *Provider) ChatStream(ctx context.Context, req llm.ChatRequest, fn llm.StreamFunc) error {
	if len(req.Messages) == 0 {
		return llm.ErrEmptyPrompt
	}
	payload := chatPayload{
		Model:    p.model(req.Model),
		Messages: req.Messages,
		Stream:   true,
		Options:  wireOptions(req.Options),
	}
	return p.stream(ctx, "/api/chat", payload, fn)
}

// ListModels implements llm.Provider.ListModels via GET /api/tags.
func (p *Provider) ListModels(ctx context.Context) ([]llm.ModelInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGenerationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	var body struct {
		Models []struct {
			Name       string    `json:"name"`
			ModifiedAt time.Time `json:"modified_at"`
			Size       int64     `json:"size"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrInvalidResponse, err)
	}

	models := make([]llm.ModelInfo, 0, len(body.Models))
	for _, m := range body.Models {
		models = append(models, llm.ModelInfo{
			Name:       m.Name,
			ModifiedAt: m.ModifiedAt,
			Size:       m.Size,
		})
	}
	return models, nil
}

// complete performs a non-streamed call and decodes the single response line.
func (p *Provider) complete(ctx context.Context, path string, payload any) (*llm.Completion, error) {
	resp, err := p.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	var line responseLine
	if err := json.NewDecoder(resp.Body).Decode(&line); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrInvalidResponse, err)
	}
	if line.Error != "" {
		return nil, fmt.Errorf("%w: %s", llm.ErrGenerationFailed, line.Error)
	}

	return &llm.Completion{
		Model:     line.Model,
		CreatedAt: line.CreatedAt,
		Content:   line.content(),
	}, nil
}

// stream performs a streamed call, forwarding each newline-delimited
// JSON chunk to fn until the daemon reports done.
func (p *Provider) stream(ctx context.Context, path string, payload any, fn llm.StreamFunc) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	resp, err := p.post(ctx, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return p.statusError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var line responseLine
		if err := json.Unmarshal(raw, &line); err != nil {
			log.Warn("skipping malformed stream line",
				slog.String("error", err.Error()))
			continue
		}
		if line.Error != "" {
			return fmt.Errorf("%w: %s", llm.ErrGenerationFailed, line.Error)
		}

		chunk := llm.Chunk{
			Model:     line.Model,
			CreatedAt: line.CreatedAt,
			Content:   line.content(),
			Done:      line.Done,
		}
		if err := fn(chunk); err != nil {
			return err
		}
		if line.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrGenerationFailed, err)
	}

	// The daemon closed the stream without a done marker.
	return fmt.Errorf("%w: stream ended before completion", llm.ErrInvalidResponse)
}

func (p *Provider) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", llm.ErrGenerationFailed, err)
	}
	return resp, nil
}

// statusError drains an error response and maps it to a provider error.
func (p *Provider) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", llm.ErrModelNotFound, msg)
	}
	return fmt.Errorf("%w: ollama returned status %d: %s", llm.ErrGenerationFailed, resp.StatusCode, msg)
}
