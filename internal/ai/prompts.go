package ai

import (
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const mealPlanTemplate = `Create a detailed 7-day meal plan for a person whose fitness goal is {{.goal}}.
Dietary preferences: {{.preferences}}.
Allergies: {{.allergies}}.
For each day list breakfast, lunch, dinner and snacks with portion sizes, calories and macros (protein, carbs, fat).`

// PhotoCritiqueSystemPrompt is sent with every front/back photo analysis.
const PhotoCritiqueSystemPrompt = `You are an experienced physique coach. You will receive two progress photos of the same person: ` +
	`the first shows the front, the second shows the back. Give an honest, encouraging critique of posture, ` +
	`muscle balance and visible body composition, then list the three most important areas to focus on next. ` +
	`Do not guess identity, age or medical conditions.`

// PhotoCritiquePrompt accompanies the two images in the user turn.
const PhotoCritiquePrompt = "Here are my front and back progress photos. Please critique my physique."

var mealPlanPrompt = prompts.NewPromptTemplate(mealPlanTemplate, []string{"goal", "preferences", "allergies"})

// MealPlanPrompt renders the meal-plan instruction. Empty lists render as "none".
func MealPlanPrompt(goal string, preferences, allergies []string) (string, error) {
	return mealPlanPrompt.Format(map[string]any{
		"goal":        goal,
		"preferences": joinOrNone(preferences),
		"allergies":   joinOrNone(allergies),
	})
}

func joinOrNone(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return "none"
	}
	return strings.Join(cleaned, ", ")
}
