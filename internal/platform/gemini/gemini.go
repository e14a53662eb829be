// Package gemini implements llm.Provider on Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/llm"
	"github.com/yolo-life/yolo-api/internal/platform/logger"
)

// Provider calls the Gemini API through the genai client.
type Provider struct {
	client       *genai.Client
	defaultModel string
	logger       *slog.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New creates a Gemini-backed provider from the LLM configuration.
func New(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Provider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", llm.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", llm.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", llm.ErrInvalidConfig, err)
	}

	return &Provider{
		client:       client,
		defaultModel: cfg.ModelName,
		logger:       log.With(slog.String("component", "gemini")),
	}, nil
}

// Name implements llm.Provider.Name
func (p *Provider) Name() string { return "gemini" }

func (p *Provider) model(requested string) string {
	if requested != "" {
		return requested
	}
	return p.defaultModel
}

// genConfig translates provider-neutral options to a Gemini request
// config. NumCtx has no Gemini equivalent and is ignored.
func genConfig(opts llm.Options, system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*opts.Temperature))
	}
	if opts.TopP != nil {
		cfg.TopP = genai.Ptr(float32(*opts.TopP))
	}
	if opts.NumPredict != nil {
		cfg.MaxOutputTokens = int32(*opts.NumPredict)
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// chatContents converts chat messages to Gemini contents. System turns
// are folded into the system instruction rather than the history.
func chatContents(messages []llm.Message) ([]*genai.Content, string) {
	var system string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = m.Content
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents, system
}

// Generate implements llm.Provider.Generate
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Completion, error) {
	if req.Prompt == "" {
		return nil, llm.ErrEmptyPrompt
	}
	return p.complete(ctx, p.model(req.Model), genai.Text(req.Prompt), genConfig(req.Options, req.System))
}

// Chat implements llm.Provider.Chat
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.Completion, error) {
	if len(req.Messages) == 0 {
		return nil, llm.ErrEmptyPrompt
	}
	contents, system := chatContents(req.Messages)
	return p.complete(ctx, p.model(req.Model), contents, genConfig(req.Options, system))
}

func (p *Provider) complete(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*llm.Completion, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		log.Error("gemini generation failed",
			slog.String("error", err.Error()),
			slog.String("model", model))
		return nil, p.mapError(err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates returned", llm.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, llm.ErrContentBlocked
	}

	return &llm.Completion{
		Model:     model,
		CreatedAt: time.Now().UTC(),
		Content:   resp.Text(),
	}, nil
}

// GenerateStream implements llm.Provider.GenerateStream
func (p *Provider) GenerateStream(ctx context.Context, req llm.GenerateRequest, fn llm.StreamFunc) error {
	if req.Prompt == "" {
		return llm.ErrEmptyPrompt
	}
	return p.streamContent(ctx, p.model(req.Model), genai.Text(req.Prompt), genConfig(req.Options, req.System), fn)
}

// ChatStream implements llm.Provider.ChatStream
func (p *Provider) ChatStream(ctx context.Context, req llm.ChatRequest, fn llm.StreamFunc) error {
	if len(req.Messages) == 0 {
		return llm.ErrEmptyPrompt
	}
	contents, system := chatContents(req.Messages)
	return p.streamContent(ctx, p.model(req.Model), contents, genConfig(req.Options, system), fn)
}

func (p *Provider) streamContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
	fn llm.StreamFunc,
) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	for resp, err := range p.client.Models.GenerateContentStream(ctx, model, contents, cfg) {
		if err != nil {
			log.Error("gemini stream failed",
				slog.String("error", err.Error()),
				slog.String("model", model))
			return p.mapError(err)
		}
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return llm.ErrContentBlocked
		}

		chunk := llm.Chunk{
			Model:     model,
			CreatedAt: time.Now().UTC(),
			Content:   resp.Text(),
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}

	// Gemini streams carry no explicit done marker, so emit one.
	return fn(llm.Chunk{Model: model, CreatedAt: time.Now().UTC(), Done: true})
}

// ListModels implements llm.Provider.ListModels
func (p *Provider) ListModels(ctx context.Context) ([]llm.ModelInfo, error) {
	var models []llm.ModelInfo
	for model, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, p.mapError(err)
		}
		models = append(models, llm.ModelInfo{Name: model.Name})
	}
	return models, nil
}

func (p *Provider) mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 404 {
		return fmt.Errorf("%w: %s", llm.ErrModelNotFound, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", llm.ErrGenerationFailed, err)
}
