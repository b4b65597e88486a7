package domain

// MealPlanRequest drives both the mocked and the AI-generated meal plan.
type MealPlanRequest struct {
	UserID             string   `json:"user_id" binding:"required"`
	Goal               string   `json:"goal" binding:"required"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	CalorieTarget      *int     `json:"calorie_target,omitempty" binding:"omitempty,gt=0"`
	MealFrequency      *int     `json:"meal_frequency,omitempty" binding:"omitempty,gt=0"`
}

func (r *MealPlanRequest) ApplyDefaults() {
	r.DietaryPreferences = emptyIfNil(r.DietaryPreferences)
	r.Allergies = emptyIfNil(r.Allergies)
}

type WorkoutPlanRequest struct {
	UserID             string   `json:"user_id" binding:"required"`
	Goal               string   `json:"goal" binding:"required"`
	TrainingExperience string   `json:"training_experience" binding:"required"`
	TrainingSplit      string   `json:"training_split" binding:"required"`
	TrainingStyle      string   `json:"training_style" binding:"required"`
	Equipment          []string `json:"equipment"`
	DaysPerWeek        *int     `json:"days_per_week,omitempty" binding:"omitempty,gte=1,lte=7"`
}

func (r *WorkoutPlanRequest) ApplyDefaults() {
	r.Equipment = emptyIfNil(r.Equipment)
}

// Meal is a single entry of a meal plan day. Macros are grams.
type Meal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fat      int    `json:"fat"`
}

// Exercise is a single entry of a workout plan day. Weight is lbs; 0 means bodyweight.
type Exercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type MealPlanDay struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

type WorkoutPlanDay struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

type MealPlan struct {
	Plan []MealPlanDay `json:"plan"`
}

type WorkoutPlan struct {
	Plan []WorkoutPlanDay `json:"plan"`
}
