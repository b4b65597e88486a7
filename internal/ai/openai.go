package ai

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"pocketcoach/backend/internal/config"
)

// openAIProvider talks to OpenAI (or any OpenAI-compatible base URL) through langchaingo.
type openAIProvider struct {
	llm *openai.LLM
}

func NewOpenAIProvider(cfg config.AIConfig) (Provider, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.MealPlanModel),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, openai.WithBaseURL(base))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &openAIProvider{llm: llm}, nil
}

func (p *openAIProvider) Name() string { return "openai" }

func (p *openAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := p.llm.GenerateContent(ctx, buildMessages(req), callOptions(req)...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func buildMessages(req Request) []llms.MessageContent {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}

	parts := make([]llms.ContentPart, 0, 1+len(req.Images))
	if req.Prompt != "" {
		parts = append(parts, llms.TextPart(req.Prompt))
	}
	for _, img := range req.Images {
		parts = append(parts, llms.ImageURLPart(img.DataURL()))
	}
	return append(messages, llms.MessageContent{Role: llms.ChatMessageTypeHuman, Parts: parts})
}

func callOptions(req Request) []llms.CallOption {
	var opts []llms.CallOption
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*req.Temperature))
	}
	return opts
}
