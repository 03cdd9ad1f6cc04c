package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/internal/server/middleware"
	"github.com/project-simone/simone/pkg/engine"
	"github.com/project-simone/simone/pkg/episode"
	"github.com/project-simone/simone/pkg/graph"
	"github.com/project-simone/simone/pkg/insight"
	"github.com/project-simone/simone/pkg/logger"
)

func appEngine(c echo.Context) *engine.Engine {
	return c.(*middleware.AppContext).App.Engine
}

// errorJSON maps domain errors to status codes. Unknown errors are logged
// and reported as 500 without their message.
func errorJSON(c echo.Context, err error) error {
	var noPath *graph.NoPathError
	if errors.As(err, &noPath) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"concept1": noPath.From,
			"concept2": noPath.To,
			"error":    err.Error(),
		})
	}

	switch {
	case errors.Is(err, graph.ErrConceptNotFound), errors.Is(err, engine.ErrEpisodeNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, graph.ErrNoPath):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, insight.ErrNoEpisodes),
		errors.Is(err, episode.ErrUnknownField),
		errors.Is(err, engine.ErrUnsupportedFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Request cancelled"})
	}

	logger.Error("[Server] Request failed",
		"path", c.Path(),
		"request_id", c.(*middleware.AppContext).RequestID,
		"err", err,
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func invalidParams(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
}
