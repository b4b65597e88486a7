package service

import (
	"context"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
)

type AnalysisService interface {
	// CritiquePhotos sends the front and back photos to the vision model. Provider errors are
	// returned to the caller unchanged.
	CritiquePhotos(ctx context.Context, front, back ai.Image) (string, error)
}

type analysisService struct {
	provider ai.Provider
	cfg      config.AIConfig
	log      *logger.Logger
}

func NewAnalysisService(provider ai.Provider, cfg config.AIConfig, log *logger.Logger) AnalysisService {
	return &analysisService{provider: provider, cfg: cfg, log: log}
}

func (s *analysisService) CritiquePhotos(ctx context.Context, front, back ai.Image) (string, error) {
	ctx, cancel := withTimeout(ctx, s.cfg)
	defer cancel()

	s.log.Debug("Requesting photo critique", "provider", s.provider.Name(), "front_bytes", len(front.Data), "back_bytes", len(back.Data))
	return s.provider.Generate(ctx, ai.Request{
		System:    ai.PhotoCritiqueSystemPrompt,
		Prompt:    ai.PhotoCritiquePrompt,
		Images:    []ai.Image{front, back},
		Model:     s.cfg.VisionModel,
		MaxTokens: s.cfg.VisionMaxTokens,
	})
}
