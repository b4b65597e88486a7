package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/service"
	"pocketcoach/backend/internal/validation"
)

// PlanHandler serves the meal and workout plan routes.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// MealPlan godoc
// @Summary Mock meal plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body domain.MealPlanRequest true "Meal plan request"
// @Success 200 {object} domain.MealPlan
// @Failure 422 {object} validation.Error
// @Router /mealplan [post]
func (h *PlanHandler) MealPlan(c *gin.Context) {
	req, verr := validation.BindJSON[domain.MealPlanRequest](c)
	if verr != nil {
		verr.Abort(c)
		return
	}
	c.JSON(http.StatusOK, h.planService.MockMealPlan(req))
}

// AIMealPlan godoc
// @Summary AI-generated meal plan
// @Description Provider failures are reported in the "error" field with status 200.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body domain.MealPlanRequest true "Meal plan request"
// @Success 200 {object} gin.H "{"plan": "..."} or {"error": "..."}"
// @Failure 422 {object} validation.Error
// @Router /mealplan/ai [post]
func (h *PlanHandler) AIMealPlan(c *gin.Context) {
	req, verr := validation.BindJSON[domain.MealPlanRequest](c)
	if verr != nil {
		verr.Abort(c)
		return
	}

	plan, err := h.planService.GenerateMealPlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// WorkoutPlan godoc
// @Summary Mock workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body domain.WorkoutPlanRequest true "Workout plan request"
// @Success 200 {object} domain.WorkoutPlan
// @Failure 422 {object} validation.Error
// @Router /workoutplan [post]
func (h *PlanHandler) WorkoutPlan(c *gin.Context) {
	req, verr := validation.BindJSON[domain.WorkoutPlanRequest](c)
	if verr != nil {
		verr.Abort(c)
		return
	}
	c.JSON(http.StatusOK, h.planService.MockWorkoutPlan(req))
}
