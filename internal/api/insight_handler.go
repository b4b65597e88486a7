package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/service"
)

// InsightHandler serves the canned coaching feedback and weight prediction.
type InsightHandler struct {
	insightService service.InsightService
}

func NewInsightHandler(insightService service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (h *InsightHandler) Feedback(c *gin.Context) {
	c.JSON(http.StatusOK, h.insightService.Feedback(c.Param("user_id")))
}

func (h *InsightHandler) Prediction(c *gin.Context) {
	c.JSON(http.StatusOK, h.insightService.Prediction(c.Param("user_id")))
}
