package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kweston/stridelog/internal/api/handler"
	"github.com/kweston/stridelog/internal/api/middleware"
	"github.com/kweston/stridelog/internal/config"
	"github.com/kweston/stridelog/internal/logger"
	"github.com/kweston/stridelog/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	runService *service.RunService,
	goalService *service.GoalService,
	importService *service.ImportService,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	runHandler := handler.NewRunHandler(runService, goalService)
	goalHandler := handler.NewGoalHandler(goalService)
	importHandler := handler.NewImportHandler(importService, goalService, cfg.Import.MaxBatchFiles)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes, all user-scoped
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireUser())
	{
		// Runs
		v1.GET("/runs", runHandler.ListRuns)
		v1.POST("/runs", runHandler.CreateRun)
		v1.GET("/runs/summary", runHandler.Summary)
		v1.GET("/runs/:id", runHandler.GetRun)
		v1.PUT("/runs/:id", runHandler.UpdateRun)
		v1.DELETE("/runs/:id", runHandler.DeleteRun)

		// Goals
		v1.GET("/goals", goalHandler.ListGoals)
		v1.POST("/goals", goalHandler.CreateGoal)
		v1.POST("/goals/sync", goalHandler.SyncGoals)
		v1.GET("/goals/:id", goalHandler.GetGoal)
		v1.PUT("/goals/:id", goalHandler.UpdateGoal)
		v1.DELETE("/goals/:id", goalHandler.DeleteGoal)
		v1.GET("/goals/:id/progress", goalHandler.GoalProgress)

		// Import
		v1.POST("/import", importHandler.ImportFiles)
	}

	return r
}
