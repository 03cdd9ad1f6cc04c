package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/episode"
)

type episodeSummary struct {
	ID            string    `json:"episode_id"`
	Title         string    `json:"title"`
	PrimaryTopic  string    `json:"primary_topic"`
	ProcessedDate time.Time `json:"processed_date"`
	Concepts      []string  `json:"concepts"`
	Valid         bool      `json:"valid"`
}

func summarize(episodes []common.Episode) []episodeSummary {
	out := make([]episodeSummary, 0, len(episodes))
	for _, ep := range episodes {
		out = append(out, episodeSummary{
			ID:            ep.ID,
			Title:         ep.Title,
			PrimaryTopic:  ep.ContentAnalysis.PrimaryTopic,
			ProcessedDate: ep.ProcessedDate,
			Concepts:      ep.ConceptNames(),
			Valid:         ep.IsValid(),
		})
	}
	return out
}

func GetEpisodesHandler(c echo.Context) error {
	type getEpisodesParams struct {
		Query       string `query:"q"`
		Field       string `query:"field" validate:"omitempty,oneof=all title transcript concepts"`
		ValidOnly   bool   `query:"valid_only"`
		Concept     string `query:"concept"`
		Philosopher string `query:"philosopher"`
	}

	params := new(getEpisodesParams)
	if err := c.Bind(params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	corpus := appEngine(c).Corpus()
	switch {
	case params.Concept != "":
		return c.JSON(http.StatusOK, summarize(corpus.EpisodesByConcept(params.Concept)))
	case params.Philosopher != "":
		return c.JSON(http.StatusOK, summarize(corpus.EpisodesByPhilosopher(params.Philosopher)))
	}

	if params.Query == "" {
		return c.JSON(http.StatusOK, summarize(corpus.All(params.ValidOnly)))
	}

	found, err := corpus.Search(params.Query, episode.SearchField(params.Field))
	if err != nil {
		return errorJSON(c, err)
	}
	if params.ValidOnly {
		valid := found[:0]
		for _, ep := range found {
			if ep.IsValid() {
				valid = append(valid, ep)
			}
		}
		found = valid
	}

	return c.JSON(http.StatusOK, summarize(found))
}

func GetEpisodeHandler(c echo.Context) error {
	type getEpisodeParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getEpisodeParams)
	if err := c.Bind(params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	ep, err := appEngine(c).Episode(params.ID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ep)
}
