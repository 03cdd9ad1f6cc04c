package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func GetConceptsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, appEngine(c).ConceptMap())
}

func GetConceptHandler(c echo.Context) error {
	type getConceptParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(getConceptParams)
	if err := c.Bind(params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	detail, err := appEngine(c).Concept(params.Name)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

func GetNeighborhoodHandler(c echo.Context) error {
	type getNeighborhoodParams struct {
		Name  string `param:"name" validate:"required"`
		Depth int    `query:"depth" validate:"omitempty,min=1,max=5"`
	}

	params := new(getNeighborhoodParams)
	if err := c.Bind(params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	view, err := appEngine(c).Graph().Neighborhood(params.Name, params.Depth)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func GetPathHandler(c echo.Context) error {
	type getPathParams struct {
		From string `query:"from" validate:"required"`
		To   string `query:"to" validate:"required"`
	}

	params := new(getPathParams)
	if err := c.Bind(params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	path, err := appEngine(c).Graph().FindConceptPath(params.From, params.To)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, path)
}

func GetGraphHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, appEngine(c).Graph().ExportForVisualization())
}
