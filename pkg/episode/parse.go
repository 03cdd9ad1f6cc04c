package episode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/logger"
)

// record mirrors the on-disk analysis layout, which nests episode metadata
// and the concept list one level deeper than common.Episode. Sections are
// kept raw so one badly shaped section does not reject the episode.
type record struct {
	EpisodeID            json.RawMessage `json:"episode_id"`
	Metadata             json.RawMessage `json:"metadata"`
	ContentAnalysis      json.RawMessage `json:"content_analysis"`
	PhilosophicalContent json.RawMessage `json:"philosophical_content"`
	Connections          json.RawMessage `json:"connections"`
	PracticalWisdom      json.RawMessage `json:"practical_wisdom"`
	EpisodeMetrics       json.RawMessage `json:"episode_metrics"`
	UniqueInsights       json.RawMessage `json:"unique_insights"`
	ListenerValue        json.RawMessage `json:"listener_value"`
	RawTranscript        json.RawMessage `json:"raw_transcript"`
}

type metadata struct {
	Title         json.RawMessage `json:"title"`
	YoutubeID     json.RawMessage `json:"youtube_id"`
	Filename      json.RawMessage `json:"filename"`
	Hosts         json.RawMessage `json:"hosts"`
	ProcessedDate json.RawMessage `json:"processed_date"`
}

type philosophicalContent struct {
	ConceptsExplored json.RawMessage `json:"concepts_explored"`
}

var (
	errNotObject     = errors.New("concept entry is not an object")
	errConceptNotStr = errors.New("concept name is not a string")
)

var processedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse decodes one episode analysis file. Input that is not valid JSON is
// passed through a JSON repair step before giving up. Individual concept
// entries that are not objects are kept with a non-nil Err so the graph
// builder can skip and count them.
func Parse(data []byte) (common.Episode, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return common.Episode{}, &MalformedRecordError{Err: err}
		}
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return common.Episode{}, &MalformedRecordError{Err: fmt.Errorf("%w (repair failed: %v)", err, repairErr)}
		}
		rec = record{}
		if err := json.Unmarshal([]byte(repaired), &rec); err != nil {
			return common.Episode{}, &MalformedRecordError{Err: err}
		}
	}

	id := strings.TrimSpace(common.LooseString(rec.EpisodeID))
	if id == "" {
		return common.Episode{}, &MalformedRecordError{Err: errors.New("missing episode_id")}
	}

	meta := section[metadata](id, "metadata", rec.Metadata)
	content := section[philosophicalContent](id, "philosophical_content", rec.PhilosophicalContent)

	return common.Episode{
		ID:              id,
		Title:           common.LooseString(meta.Title),
		YoutubeID:       common.LooseString(meta.YoutubeID),
		Filename:        common.LooseString(meta.Filename),
		Hosts:           section[common.TextList](id, "metadata.hosts", meta.Hosts),
		ProcessedDate:   parseProcessedDate(common.LooseString(meta.ProcessedDate)),
		ContentAnalysis: section[common.ContentAnalysis](id, "content_analysis", rec.ContentAnalysis),
		Concepts:        parseConcepts(content.ConceptsExplored),
		Connections:     section[common.Connections](id, "connections", rec.Connections),
		PracticalWisdom: section[common.PracticalWisdom](id, "practical_wisdom", rec.PracticalWisdom),
		Metrics:         section[common.EpisodeMetrics](id, "episode_metrics", rec.EpisodeMetrics),
		UniqueInsights:  section[common.TextList](id, "unique_insights", rec.UniqueInsights),
		ListenerValue:   section[common.ListenerValue](id, "listener_value", rec.ListenerValue),
		RawTranscript:   common.LooseString(rec.RawTranscript),
	}, nil
}

// section decodes one optional part of a record. A part with an
// unexpected shape is logged and left zero.
func section[T any](id, name string, raw json.RawMessage) T {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("[Episode] Ignoring malformed section", "episode", id, "section", name, "err", err)
		var zero T
		return zero
	}
	return v
}

func parseConcepts(raw json.RawMessage) []common.ConceptEntry {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []common.ConceptEntry{{Err: fmt.Errorf("concepts_explored is not a list: %w", err)}}
	}

	entries := make([]common.ConceptEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, parseConcept(item))
	}
	return entries
}

func parseConcept(item json.RawMessage) common.ConceptEntry {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return common.ConceptEntry{Err: errNotObject}
	}

	var entry common.ConceptEntry
	if raw, ok := fields["concept"]; ok {
		if err := json.Unmarshal(raw, &entry.Concept); err != nil {
			return common.ConceptEntry{Err: errConceptNotStr}
		}
	}
	entry.Definition = optionalString(fields["definition_given"])
	entry.Application = optionalString(fields["practical_application"])
	return entry
}

// optionalString decodes a string field and treats any other shape as
// absent.
func optionalString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func parseProcessedDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range processedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
