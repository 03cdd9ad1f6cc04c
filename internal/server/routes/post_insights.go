package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/internal/server/middleware"
)

func InsightsHandler(c echo.Context) error {
	type insightsBody struct {
		Topic      string   `json:"topic" validate:"max=200"`
		EpisodeIDs []string `json:"episode_ids"`
	}

	data := new(insightsBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(data); err != nil {
		return invalidBody(c)
	}

	report, err := appEngine(c).Insights(c.Request().Context(), data.Topic, data.EpisodeIDs)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

func ExportHandler(c echo.Context) error {
	type exportBody struct {
		Format      string `json:"format" validate:"omitempty,oneof=json csv"`
		Destination string `json:"destination"`
	}

	data := new(exportBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(data); err != nil {
		return invalidBody(c)
	}

	location, err := appEngine(c).ExportInsights(c.Request().Context(), data.Format, data.Destination)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"location":   location,
		"request_id": c.(*middleware.AppContext).RequestID,
	})
}
