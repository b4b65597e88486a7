package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/service"
)

// NewRouter builds the gin engine with the shared middleware stack.
func NewRouter(cfg config.Config, log *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(CORS())

	return router
}

func SetupRoutes(
	router *gin.Engine,
	cfg config.Config,
	log *logger.Logger,
	userService service.UserService,
	planService service.PlanService,
	progressService service.ProgressService,
	insightService service.InsightService,
	analysisService service.AnalysisService,
) {
	userHandler := NewUserHandler(userService, log)
	planHandler := NewPlanHandler(planService)
	progressHandler := NewProgressHandler(progressService, cfg.Server.MaxUploadBytes, log)
	insightHandler := NewInsightHandler(insightService)
	analysisHandler := NewAnalysisHandler(analysisService, cfg.Server.MaxUploadBytes, log)

	router.GET("/", Root)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.POST("/user", userHandler.CreateUser)
	router.GET("/user/:user_id", userHandler.GetUser)

	router.POST("/mealplan", planHandler.MealPlan)
	router.POST("/mealplan/ai", planHandler.AIMealPlan)
	router.POST("/workoutplan", planHandler.WorkoutPlan)

	progress := router.Group("/progress")
	{
		progress.POST("/weight", progressHandler.LogWeight)
		progress.GET("/weight/:user_id", progressHandler.WeightHistory)
		progress.POST("/measurements", progressHandler.LogMeasurement)
		progress.GET("/measurements/:user_id", progressHandler.MeasurementHistory)
		progress.POST("/photo", LimitUploadBody(cfg.Server.MaxUploadBytes, 1), progressHandler.UploadPhoto)
		progress.GET("/photos/:user_id", progressHandler.ListPhotos)
	}

	aiGroup := router.Group("/ai")
	{
		aiGroup.GET("/feedback/:user_id", insightHandler.Feedback)
		aiGroup.GET("/prediction/:user_id", insightHandler.Prediction)
	}

	router.POST("/analyze/photos", LimitUploadBody(cfg.Server.MaxUploadBytes, 2), analysisHandler.AnalyzePhotos)
}
