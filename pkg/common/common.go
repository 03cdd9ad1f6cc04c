package common

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Episode is a single analysed podcast episode as produced by the upstream
// analysis pipeline. Only the fields the backend reads are modelled; unknown
// keys in the source JSON are ignored.
//
// An episode contributes to the concept graph through its Concepts list,
// which keeps the order of the source "concepts_explored" array.
type Episode struct {
	ID            string    `json:"episode_id"`
	Title         string    `json:"title"`
	YoutubeID     string    `json:"youtube_id"`
	Filename      string    `json:"filename"`
	Hosts         []string  `json:"hosts"`
	ProcessedDate time.Time `json:"processed_date"`

	ContentAnalysis ContentAnalysis `json:"content_analysis"`
	Concepts        []ConceptEntry  `json:"concepts_explored"`
	Connections     Connections     `json:"connections"`
	PracticalWisdom PracticalWisdom `json:"practical_wisdom"`
	Metrics         EpisodeMetrics  `json:"episode_metrics"`
	UniqueInsights  TextList        `json:"unique_insights"`
	ListenerValue   ListenerValue   `json:"listener_value"`
	RawTranscript   string          `json:"raw_transcript,omitempty"`
}

const (
	failedTopic   = "Analysis failed"
	failedSummary = "Analysis could not be completed"
)

// IsValid reports whether the analysis pipeline produced a usable result for
// the episode. Invalid episodes stay in the corpus but are left out of
// concept statistics.
func (e Episode) IsValid() bool {
	brief := e.ContentAnalysis.Summary.Brief
	return e.ContentAnalysis.PrimaryTopic != failedTopic &&
		brief != "" &&
		brief != failedSummary
}

// ConceptNames returns the names of the well formed concept entries in
// source order, duplicates included.
func (e Episode) ConceptNames() []string {
	names := make([]string, 0, len(e.Concepts))
	for _, c := range e.Concepts {
		if c.Valid() {
			names = append(names, c.Concept)
		}
	}
	return names
}

// ConceptEntry is one element of an episode's concept extraction list.
//
// Entries that were not JSON objects in the source carry a non-nil Err and
// an empty Concept. Consumers skip such entries instead of failing.
type ConceptEntry struct {
	Concept     string `json:"concept"`
	Definition  string `json:"definition_given,omitempty"`
	Application string `json:"practical_application,omitempty"`
	Err         error  `json:"-"`
}

// Valid reports whether the entry is object-shaped and names a concept.
func (c ConceptEntry) Valid() bool {
	return c.Err == nil && c.Concept != ""
}

// ContentAnalysis holds the summary part of an episode analysis.
type ContentAnalysis struct {
	PrimaryTopic    string   `json:"primary_topic"`
	SecondaryTopics TextList `json:"secondary_topics"`
	MainThesis      string   `json:"main_thesis"`
	Summary         Summary  `json:"summary"`
}

// UnmarshalJSON implements json.Unmarshaler. Fields with an unexpected
// shape are left empty instead of failing the whole section.
func (a *ContentAnalysis) UnmarshalJSON(data []byte) error {
	var raw struct {
		PrimaryTopic    json.RawMessage `json:"primary_topic"`
		SecondaryTopics json.RawMessage `json:"secondary_topics"`
		MainThesis      json.RawMessage `json:"main_thesis"`
		Summary         json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := ContentAnalysis{
		PrimaryTopic: LooseString(raw.PrimaryTopic),
		MainThesis:   LooseString(raw.MainThesis),
	}
	if len(raw.SecondaryTopics) > 0 {
		_ = json.Unmarshal(raw.SecondaryTopics, &out.SecondaryTopics)
	}
	if len(raw.Summary) > 0 {
		_ = json.Unmarshal(raw.Summary, &out.Summary)
	}
	*a = out
	return nil
}

// Summary holds the short and long episode summaries.
type Summary struct {
	Brief    string `json:"brief"`
	Detailed string `json:"detailed"`
}

// UnmarshalJSON implements json.Unmarshaler. A bare string is taken as
// the brief summary.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var brief string
	if err := json.Unmarshal(data, &brief); err == nil {
		*s = Summary{Brief: brief}
		return nil
	}

	var raw struct {
		Brief    json.RawMessage `json:"brief"`
		Detailed json.RawMessage `json:"detailed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Summary{Brief: LooseString(raw.Brief), Detailed: LooseString(raw.Detailed)}
	return nil
}

// Connections links an episode to recurring themes and thinkers.
type Connections struct {
	RecurringThemes       TextList `json:"recurring_themes"`
	PhilosophersMentioned TextList `json:"philosophers_mentioned"`
}

// PracticalWisdom groups the actionable advice extracted from an episode.
type PracticalWisdom struct {
	LifeAdvice         TextList `json:"life_advice"`
	MindsetShifts      TextList `json:"mindset_shifts"`
	ImplementationTips TextList `json:"implementation_tips"`
}

// EpisodeMetrics are numeric scores computed by the analysis pipeline.
type EpisodeMetrics struct {
	ComplexityScore float64 `json:"complexity_score"`
	ConceptsCount   int     `json:"concepts_count"`
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)`)

// UnmarshalJSON implements json.Unmarshaler. Scores written as strings
// such as "7" or "7/10" keep their leading number; anything else is 0.
func (m *EpisodeMetrics) UnmarshalJSON(data []byte) error {
	var raw struct {
		ComplexityScore json.RawMessage `json:"complexity_score"`
		ConceptsCount   json.RawMessage `json:"concepts_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = EpisodeMetrics{
		ComplexityScore: looseNumber(raw.ComplexityScore),
		ConceptsCount:   int(looseNumber(raw.ConceptsCount)),
	}
	return nil
}

func looseNumber(raw json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	n, err := strconv.ParseFloat(leadingNumber.FindString(strings.TrimSpace(s)), 64)
	if err != nil {
		return 0
	}
	return n
}

// LooseString decodes a scalar as text. Strings are returned as is,
// numbers and booleans by their JSON literal, and null, objects, arrays or
// missing values as "".
func LooseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch raw[0] {
	case '{', '[', 'n':
		return ""
	}
	return string(raw)
}

// ListenerValue holds listener facing takeaways.
type ListenerValue struct {
	KeyTakeaways TextList `json:"key_takeaways"`
}

// TextList is a list of strings that tolerates the loose shapes produced by
// LLM analysis: a single string becomes a one element list, and non-string
// elements are kept as their compact JSON encoding.
type TextList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*t = nil
			return nil
		}
		*t = TextList{single}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(TextList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, item); err != nil {
			continue
		}
		if compact.String() == "null" {
			continue
		}
		out = append(out, compact.String())
	}
	*t = out
	return nil
}
