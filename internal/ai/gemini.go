package ai

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pocketcoach/backend/internal/config"
)

type geminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider builds a Gemini-backed provider. Model names come from the request, so
// ai.meal_plan_model and ai.vision_model must name Gemini models when this provider is selected.
func NewGeminiProvider(cfg config.AIConfig) (Provider, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	model := p.client.GenerativeModel(req.Model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature != nil {
		model.SetTemperature(float32(*req.Temperature))
	}
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	parts := make([]genai.Part, 0, 1+len(req.Images))
	if req.Prompt != "" {
		parts = append(parts, genai.Text(req.Prompt))
	}
	for _, img := range req.Images {
		parts = append(parts, genai.ImageData(imageFormat(img.MIMEType), img.Data))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// imageFormat maps "image/jpeg" to the "jpeg" format genai.ImageData expects.
func imageFormat(mimeType string) string {
	if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
		return sub
	}
	return "jpeg"
}
