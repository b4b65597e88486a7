package service

import "pocketcoach/backend/internal/domain"

// InsightService serves the AI feedback and prediction stubs.
type InsightService interface {
	Feedback(userID string) domain.Feedback
	Prediction(userID string) domain.Prediction
}

type insightService struct{}

func NewInsightService() InsightService {
	return insightService{}
}

func (insightService) Feedback(userID string) domain.Feedback {
	return mockFeedback(userID)
}

func (insightService) Prediction(userID string) domain.Prediction {
	return mockPrediction(userID)
}
