package domain

// Feedback is the coaching note returned by the AI feedback stub.
type Feedback struct {
	UserID      string   `json:"user_id"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// Prediction is the progress forecast returned by the AI prediction stub.
type Prediction struct {
	UserID                 string  `json:"user_id"`
	PredictedWeight4Weeks  float64 `json:"predicted_weight_4_weeks"`
	PredictedWeight12Weeks float64 `json:"predicted_weight_12_weeks"`
	Confidence             float64 `json:"confidence"`
	Message                string  `json:"message"`
}
