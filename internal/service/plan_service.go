package service

import (
	"context"
	"fmt"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/platform/logger"
)

type PlanService interface {
	// MockMealPlan and MockWorkoutPlan ignore their input: every valid request gets the same plan.
	MockMealPlan(req domain.MealPlanRequest) domain.MealPlan
	MockWorkoutPlan(req domain.WorkoutPlanRequest) domain.WorkoutPlan

	// GenerateMealPlan asks the AI provider for a meal plan and returns its text verbatim.
	GenerateMealPlan(ctx context.Context, req domain.MealPlanRequest) (string, error)
}

type planService struct {
	provider ai.Provider
	cfg      config.AIConfig
	log      *logger.Logger
}

func NewPlanService(provider ai.Provider, cfg config.AIConfig, log *logger.Logger) PlanService {
	return &planService{provider: provider, cfg: cfg, log: log}
}

func (s *planService) MockMealPlan(domain.MealPlanRequest) domain.MealPlan {
	return mockMealPlan()
}

func (s *planService) MockWorkoutPlan(domain.WorkoutPlanRequest) domain.WorkoutPlan {
	return mockWorkoutPlan()
}

func (s *planService) GenerateMealPlan(ctx context.Context, req domain.MealPlanRequest) (string, error) {
	prompt, err := ai.MealPlanPrompt(req.Goal, req.DietaryPreferences, req.Allergies)
	if err != nil {
		return "", fmt.Errorf("build meal plan prompt: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.cfg)
	defer cancel()

	temperature := s.cfg.Temperature
	plan, err := s.provider.Generate(ctx, ai.Request{
		Prompt:      prompt,
		Model:       s.cfg.MealPlanModel,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		s.log.Warn("AI meal plan generation failed", "user_id", req.UserID, "provider", s.provider.Name(), "error", err)
		return "", err
	}
	return plan, nil
}

// withTimeout bounds a provider call by ai.timeout on top of the request context.
func withTimeout(ctx context.Context, cfg config.AIConfig) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}
