package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func LearningPathHandler(c echo.Context) error {
	type learningPathBody struct {
		Start       string `json:"start" validate:"required"`
		Target      string `json:"target"`
		MaxEpisodes int    `json:"max_episodes" validate:"omitempty,min=1,max=20"`
	}

	data := new(learningPathBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(data); err != nil {
		return invalidBody(c)
	}

	path, err := appEngine(c).LearningPath(c.Request().Context(), data.Start, data.Target, data.MaxEpisodes)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, path)
}
