package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/episode"
)

type graphStats struct {
	Nodes             int     `json:"nodes"`
	Edges             int     `json:"edges"`
	Density           float64 `json:"density"`
	AverageClustering float64 `json:"average_clustering"`
	Components        int     `json:"components"`
}

type statsResponse struct {
	Episodes episode.Statistics `json:"episodes"`
	Graph    graphStats         `json:"graph"`
	BuiltAt  time.Time          `json:"built_at"`
	Model    ai.ModelMetrics    `json:"model_metrics"`
}

func GetStatsHandler(c echo.Context) error {
	eng := appEngine(c)
	g := eng.Graph()

	return c.JSON(http.StatusOK, statsResponse{
		Episodes: eng.Corpus().Statistics(),
		Graph: graphStats{
			Nodes:             g.NodeCount(),
			Edges:             g.EdgeCount(),
			Density:           g.Density(),
			AverageClustering: g.AverageClustering(),
			Components:        len(g.ConnectedComponents()),
		},
		BuiltAt: eng.BuiltAt(),
		Model:   eng.Metrics(),
	})
}
