package server

import (
	"github.com/project-simone/simone/internal/server/middleware"
	"github.com/project-simone/simone/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Corpus routes
	apiRoutes.GET("/stats", routes.GetStatsHandler)
	apiRoutes.GET("/episodes", routes.GetEpisodesHandler)
	apiRoutes.GET("/episodes/:id", routes.GetEpisodeHandler)

	// Concept graph routes
	apiRoutes.GET("/concepts", routes.GetConceptsHandler)
	apiRoutes.GET("/concepts/:name", routes.GetConceptHandler)
	apiRoutes.GET("/concepts/:name/neighborhood", routes.GetNeighborhoodHandler)
	apiRoutes.GET("/path", routes.GetPathHandler)
	apiRoutes.GET("/graph", routes.GetGraphHandler)

	// Model backed routes
	apiRoutes.POST("/ask", routes.AskHandler)
	apiRoutes.POST("/insights", routes.InsightsHandler)
	apiRoutes.POST("/learning-path", routes.LearningPathHandler)

	// Admin routes
	apiRoutes.POST("/rebuild", routes.RebuildHandler, middleware.AuthMiddleware, middleware.RequirePermission(middleware.PermRebuild))
	apiRoutes.POST("/export", routes.ExportHandler, middleware.AuthMiddleware, middleware.RequirePermission(middleware.PermExport))
}
