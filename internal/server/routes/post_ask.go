package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/internal/util"
)

func AskHandler(c echo.Context) error {
	type askBody struct {
		Question  string `json:"question" validate:"required,max=2000"`
		EpisodeID string `json:"episode_id"`
	}

	data := new(askBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c)
	}
	data.Question = util.CleanText(data.Question)
	if err := c.Validate(data); err != nil {
		return invalidBody(c)
	}

	answer, err := appEngine(c).Ask(c.Request().Context(), data.Question, data.EpisodeID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, answer)
}
