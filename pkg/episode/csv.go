package episode

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"episode_id",
	"title",
	"primary_topic",
	"summary",
	"concepts",
	"themes",
	"philosophers",
	"complexity_score",
	"concepts_count",
	"is_valid",
	"processed_date",
}

// WriteCSV writes one row per episode in load order. List valued columns
// are joined with ", ".
func (c *Corpus) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, ep := range c.episodes {
		date := ""
		if !ep.ProcessedDate.IsZero() {
			date = ep.ProcessedDate.Format(time.RFC3339)
		}
		row := []string{
			ep.ID,
			ep.Title,
			ep.ContentAnalysis.PrimaryTopic,
			ep.ContentAnalysis.Summary.Brief,
			strings.Join(ep.ConceptNames(), ", "),
			strings.Join(ep.Connections.RecurringThemes, ", "),
			strings.Join(ep.Connections.PhilosophersMentioned, ", "),
			strconv.FormatFloat(ep.Metrics.ComplexityScore, 'f', -1, 64),
			strconv.Itoa(ep.Metrics.ConceptsCount),
			strconv.FormatBool(ep.IsValid()),
			date,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
