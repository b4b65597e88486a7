package domain

// UserProfile is the onboarding profile sent by the app. It is validated and returned as-is;
// when a database is configured it is also upserted by UserID.
type UserProfile struct {
	UserID             string   `bson:"userId" json:"user_id" binding:"required"`
	Name               string   `bson:"name" json:"name" binding:"required"`
	Age                *int     `bson:"age" json:"age" binding:"required"`
	Gender             string   `bson:"gender" json:"gender" binding:"required"`
	Height             *float64 `bson:"height" json:"height" binding:"required"` // cm
	Weight             *float64 `bson:"weight" json:"weight" binding:"required"` // lbs
	Goal               string   `bson:"goal" json:"goal" binding:"required"`     // e.g. "lose_fat", "gain_muscle"
	ActivityLevel      string   `bson:"activityLevel" json:"activity_level" binding:"required"`
	DietaryPreferences []string `bson:"dietaryPreferences" json:"dietary_preferences"`
	Allergies          []string `bson:"allergies" json:"allergies"`
	MealFrequency      *int     `bson:"mealFrequency" json:"meal_frequency" binding:"required"`
	TrainingExperience string   `bson:"trainingExperience" json:"training_experience" binding:"required"`
	TrainingSplit      string   `bson:"trainingSplit" json:"training_split" binding:"required"`
	TrainingStyle      string   `bson:"trainingStyle" json:"training_style" binding:"required"`
	Equipment          []string `bson:"equipment" json:"equipment"`
	BodyScanURL        *string  `bson:"bodyScanUrl,omitempty" json:"body_scan_url"`
}

// ApplyDefaults replaces omitted list fields with empty lists.
func (p *UserProfile) ApplyDefaults() {
	p.DietaryPreferences = emptyIfNil(p.DietaryPreferences)
	p.Allergies = emptyIfNil(p.Allergies)
	p.Equipment = emptyIfNil(p.Equipment)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Helpers for building optional numeric fields in fixtures and mocks.
func IntPtr(v int) *int           { return &v }
func FloatPtr(v float64) *float64 { return &v }
func StringPtr(v string) *string  { return &v }
