package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/internal/server/middleware"
	"github.com/project-simone/simone/pkg/logger"
)

func RebuildHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	eng := cc.App.Engine

	logger.Info("[Server] Rebuild requested", "user", cc.User.Subject, "request_id", cc.RequestID)
	if err := eng.Rebuild(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Rebuild failed: " + err.Error()})
	}

	g := eng.Graph()
	return c.JSON(http.StatusOK, map[string]any{
		"episodes": eng.Corpus().Len(),
		"nodes":    g.NodeCount(),
		"edges":    g.EdgeCount(),
		"built_at": eng.BuiltAt(),
	})
}
