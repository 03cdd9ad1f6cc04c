package episode

import (
	"cmp"
	"slices"
	"strings"

	"github.com/project-simone/simone/pkg/common"
)

// SearchField selects which part of an episode Search looks at.
type SearchField string

const (
	FieldAll        SearchField = "all"
	FieldTitle      SearchField = "title"
	FieldTranscript SearchField = "transcript"
	FieldConcepts   SearchField = "concepts"
)

// Frequency is a name with the number of valid episodes it occurs in.
type Frequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics summarises a corpus. Averages are taken over every episode,
// valid or not.
type Statistics struct {
	TotalEpisodes         int     `json:"total_episodes"`
	ValidEpisodes         int     `json:"valid_episodes"`
	FailedEpisodes        int     `json:"failed_episodes"`
	TotalConcepts         int     `json:"total_concepts"`
	TotalPhilosophers     int     `json:"total_philosophers"`
	AvgComplexity         float64 `json:"avg_complexity"`
	AvgConceptsPerEpisode float64 `json:"avg_concepts_per_episode"`
}

// Corpus is an immutable, ordered set of episodes keyed by id.
type Corpus struct {
	episodes []common.Episode
	byID     map[string]int
}

// NewCorpus builds a corpus from episodes in the given order. A later
// episode with an id already present replaces the earlier one in place.
func NewCorpus(episodes []common.Episode) *Corpus {
	c := &Corpus{
		episodes: make([]common.Episode, 0, len(episodes)),
		byID:     make(map[string]int, len(episodes)),
	}
	for _, ep := range episodes {
		if i, ok := c.byID[ep.ID]; ok {
			c.episodes[i] = ep
			continue
		}
		c.byID[ep.ID] = len(c.episodes)
		c.episodes = append(c.episodes, ep)
	}
	return c
}

// Len returns the number of episodes, valid or not.
func (c *Corpus) Len() int {
	return len(c.episodes)
}

// Get looks up an episode by id.
func (c *Corpus) Get(id string) (common.Episode, bool) {
	i, ok := c.byID[id]
	if !ok {
		return common.Episode{}, false
	}
	return c.episodes[i], true
}

// All returns the episodes in load order, optionally only the valid ones.
func (c *Corpus) All(validOnly bool) []common.Episode {
	out := make([]common.Episode, 0, len(c.episodes))
	for _, ep := range c.episodes {
		if validOnly && !ep.IsValid() {
			continue
		}
		out = append(out, ep)
	}
	return out
}

// Search returns the episodes whose selected field contains query,
// ignoring case. Invalid episodes are included.
func (c *Corpus) Search(query string, field SearchField) ([]common.Episode, error) {
	if field == "" {
		field = FieldAll
	}
	switch field {
	case FieldAll, FieldTitle, FieldTranscript, FieldConcepts:
	default:
		return nil, ErrUnknownField
	}

	q := strings.ToLower(query)
	out := make([]common.Episode, 0)
	for _, ep := range c.episodes {
		if matches(ep, q, field) {
			out = append(out, ep)
		}
	}
	return out, nil
}

func matches(ep common.Episode, q string, field SearchField) bool {
	all := field == FieldAll
	if (all || field == FieldTitle) && strings.Contains(strings.ToLower(ep.Title), q) {
		return true
	}
	if (all || field == FieldTranscript) && strings.Contains(strings.ToLower(ep.RawTranscript), q) {
		return true
	}
	if all || field == FieldConcepts {
		joined := strings.ToLower(strings.Join(ep.ConceptNames(), " "))
		if strings.Contains(joined, q) {
			return true
		}
	}
	return false
}

// ConceptFrequencies counts concept mentions across valid episodes, most
// frequent first. Ties keep first appearance order.
func (c *Corpus) ConceptFrequencies() []Frequency {
	return c.frequencies(func(ep common.Episode) []string {
		return ep.ConceptNames()
	})
}

// PhilosopherFrequencies counts philosopher mentions across valid episodes.
func (c *Corpus) PhilosopherFrequencies() []Frequency {
	return c.frequencies(func(ep common.Episode) []string {
		return ep.Connections.PhilosophersMentioned
	})
}

func (c *Corpus) frequencies(names func(common.Episode) []string) []Frequency {
	index := make(map[string]int)
	out := make([]Frequency, 0)
	for _, ep := range c.episodes {
		if !ep.IsValid() {
			continue
		}
		for _, name := range names(ep) {
			if name == "" {
				continue
			}
			if i, ok := index[name]; ok {
				out[i].Count++
				continue
			}
			index[name] = len(out)
			out = append(out, Frequency{Name: name, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b Frequency) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// EpisodesByConcept returns valid episodes with a concept whose name
// contains concept, ignoring case.
func (c *Corpus) EpisodesByConcept(concept string) []common.Episode {
	return c.filterByName(concept, func(ep common.Episode) []string {
		return ep.ConceptNames()
	})
}

// EpisodesByPhilosopher returns valid episodes mentioning a philosopher
// whose name contains philosopher, ignoring case.
func (c *Corpus) EpisodesByPhilosopher(philosopher string) []common.Episode {
	return c.filterByName(philosopher, func(ep common.Episode) []string {
		return ep.Connections.PhilosophersMentioned
	})
}

func (c *Corpus) filterByName(needle string, names func(common.Episode) []string) []common.Episode {
	needle = strings.ToLower(needle)
	out := make([]common.Episode, 0)
	for _, ep := range c.episodes {
		if !ep.IsValid() {
			continue
		}
		for _, name := range names(ep) {
			if strings.Contains(strings.ToLower(name), needle) {
				out = append(out, ep)
				break
			}
		}
	}
	return out
}

// Statistics computes corpus wide counts and averages.
func (c *Corpus) Statistics() Statistics {
	stats := Statistics{
		TotalEpisodes:     len(c.episodes),
		TotalConcepts:     len(c.ConceptFrequencies()),
		TotalPhilosophers: len(c.PhilosopherFrequencies()),
	}

	var complexity, concepts float64
	for _, ep := range c.episodes {
		if ep.IsValid() {
			stats.ValidEpisodes++
		}
		complexity += ep.Metrics.ComplexityScore
		concepts += float64(ep.Metrics.ConceptsCount)
	}
	stats.FailedEpisodes = stats.TotalEpisodes - stats.ValidEpisodes
	if n := len(c.episodes); n > 0 {
		stats.AvgComplexity = complexity / float64(n)
		stats.AvgConceptsPerEpisode = concepts / float64(n)
	}
	return stats
}
