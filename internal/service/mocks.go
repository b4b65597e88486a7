package service

import "pocketcoach/backend/internal/domain"

// Fixed payloads served while plan generation, history and insights have no real implementation.
// Builders return fresh values so callers can never mutate a shared fixture.

// RootMessage is the liveness message served on GET /.
const RootMessage = "Pocket Coach API is running!"

func mockProfile(userID string) domain.UserProfile {
	return domain.UserProfile{
		UserID:             userID,
		Name:               "Alex Johnson",
		Age:                domain.IntPtr(29),
		Gender:             "male",
		Height:             domain.FloatPtr(180),
		Weight:             domain.FloatPtr(180),
		Goal:               "lose_fat",
		ActivityLevel:      "moderately_active",
		DietaryPreferences: []string{"high_protein"},
		Allergies:          []string{},
		MealFrequency:      domain.IntPtr(4),
		TrainingExperience: "intermediate",
		TrainingSplit:      "upper_lower",
		TrainingStyle:      "strength",
		Equipment:          []string{"barbell", "dumbbells", "pull_up_bar"},
	}
}

func mockMealPlan() domain.MealPlan {
	return domain.MealPlan{Plan: []domain.MealPlanDay{
		{
			Day: "Monday",
			Meals: []domain.Meal{
				{Name: "Oatmeal with berries and whey", Calories: 450, Protein: 35, Carbs: 60, Fat: 8},
				{Name: "Grilled chicken salad", Calories: 550, Protein: 45, Carbs: 30, Fat: 25},
				{Name: "Salmon with rice and broccoli", Calories: 650, Protein: 42, Carbs: 70, Fat: 20},
			},
		},
		{
			Day: "Tuesday",
			Meals: []domain.Meal{
				{Name: "Greek yogurt with granola", Calories: 400, Protein: 30, Carbs: 50, Fat: 9},
				{Name: "Turkey wrap with veggies", Calories: 520, Protein: 40, Carbs: 45, Fat: 18},
				{Name: "Lean beef stir-fry", Calories: 680, Protein: 48, Carbs: 65, Fat: 22},
			},
		},
	}}
}

func mockWorkoutPlan() domain.WorkoutPlan {
	return domain.WorkoutPlan{Plan: []domain.WorkoutPlanDay{
		{
			Day: "Monday",
			Exercises: []domain.Exercise{
				{Name: "Barbell Back Squat", Sets: 4, Reps: 8, Weight: 185},
				{Name: "Romanian Deadlift", Sets: 3, Reps: 10, Weight: 155},
				{Name: "Walking Lunges", Sets: 3, Reps: 12, Weight: 40},
			},
		},
		{
			Day: "Tuesday",
			Exercises: []domain.Exercise{
				{Name: "Bench Press", Sets: 4, Reps: 8, Weight: 165},
				{Name: "Bent-Over Row", Sets: 4, Reps: 10, Weight: 135},
				{Name: "Pull-Ups", Sets: 3, Reps: 8, Weight: 0},
			},
		},
	}}
}

func mockWeightHistory(userID string) []domain.WeightEntry {
	return []domain.WeightEntry{
		{UserID: userID, Date: "2024-05-01", Weight: domain.FloatPtr(180)},
		{UserID: userID, Date: "2024-05-02", Weight: domain.FloatPtr(179.5)},
		{UserID: userID, Date: "2024-05-03", Weight: domain.FloatPtr(179)},
	}
}

func mockMeasurementHistory(userID string) []domain.MeasurementEntry {
	return []domain.MeasurementEntry{
		{UserID: userID, Date: "2024-05-01", Waist: domain.FloatPtr(34), Chest: domain.FloatPtr(40), Hips: domain.FloatPtr(38)},
		{UserID: userID, Date: "2024-05-08", Waist: domain.FloatPtr(33.5), Chest: domain.FloatPtr(40), Hips: domain.FloatPtr(37.75)},
		{UserID: userID, Date: "2024-05-15", Waist: domain.FloatPtr(33), Chest: domain.FloatPtr(40.25), Hips: domain.FloatPtr(37.5)},
	}
}

func mockPhotos(userID string) []domain.ProgressPhoto {
	return []domain.ProgressPhoto{
		{
			UserID: userID, Date: "2024-05-01", FileName: "front_2024-05-01.jpg",
			ContentType: "image/jpeg", Size: 245760, URL: "https://example.com/photos/" + userID + "/front_2024-05-01.jpg",
		},
		{
			UserID: userID, Date: "2024-05-15", FileName: "front_2024-05-15.jpg",
			ContentType: "image/jpeg", Size: 251904, URL: "https://example.com/photos/" + userID + "/front_2024-05-15.jpg",
		},
	}
}

func mockFeedback(userID string) domain.Feedback {
	return domain.Feedback{
		UserID:   userID,
		Feedback: "Great consistency this week! Your weight is trending down steadily while strength is holding.",
		Suggestions: []string{
			"Add 10 minutes of low-intensity cardio after upper-body days.",
			"Aim for at least 30g of protein at breakfast.",
			"Keep sleep above 7 hours to support recovery.",
		},
	}
}

func mockPrediction(userID string) domain.Prediction {
	return domain.Prediction{
		UserID:                 userID,
		PredictedWeight4Weeks:  176.5,
		PredictedWeight12Weeks: 171,
		Confidence:             0.8,
		Message:                "At your current rate you are on track to reach your goal weight in about 12 weeks.",
	}
}
