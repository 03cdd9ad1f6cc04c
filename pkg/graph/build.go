package graph

import (
	"strings"

	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/logger"
)

type buildConfig struct {
	dedupePerEpisode bool
	foldCase         bool
}

// BuildOption configures how Build counts concepts.
type BuildOption func(*buildConfig)

// WithDedupePerEpisode collapses repeated concept names inside one episode
// before counting, so every episode adds at most 1 to a node's occurrence
// count and to an edge's weight.
func WithDedupePerEpisode(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.dedupePerEpisode = enabled
	}
}

// WithCaseFolding merges concept names that differ only by case into the
// casing seen first across the corpus.
func WithCaseFolding(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.foldCase = enabled
	}
}

// Build constructs the concept co-occurrence graph from a snapshot of
// episodes. Episodes without an id and concept entries that are malformed
// or unnamed are skipped with a warning; Build never fails.
//
// For every episode each listed concept adds the episode id to its node, and
// every pair of positions holding distinct names adds one to the pair's edge
// weight. Without WithDedupePerEpisode a name listed twice counts twice.
func Build(episodes []common.Episode, opts ...BuildOption) *Graph {
	cfg := buildConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	g := newGraph()
	canonical := make(map[string]string)

	logger.Info("[Graph] Building concept graph", "episodes", len(episodes))

	for _, ep := range episodes {
		if ep.ID == "" {
			logger.Warn("[Graph] Skipping episode without id", "title", ep.Title)
			continue
		}
		g.episodes[ep.ID] = ep

		names := conceptNames(ep, cfg, canonical)

		ids := make([]int, len(names))
		for k, name := range names {
			i := g.ensureNode(name)
			node := g.nodes[i]
			node.EpisodeIDs = append(node.EpisodeIDs, ep.ID)
			node.OccurrenceCount++
			ids[k] = i
		}

		for a := 0; a < len(ids); a++ {
			for b := a + 1; b < len(ids); b++ {
				if ids[a] == ids[b] {
					continue
				}
				g.addCooccurrence(ids[a], ids[b], ep.ID)
			}
		}
	}

	logger.Info(
		"[Graph] Built concept graph",
		"concepts", g.NodeCount(),
		"relationships", g.EdgeCount(),
	)

	return g
}

func conceptNames(ep common.Episode, cfg buildConfig, canonical map[string]string) []string {
	names := make([]string, 0, len(ep.Concepts))
	seen := make(map[string]struct{}, len(ep.Concepts))
	skipped := 0

	for _, entry := range ep.Concepts {
		if !entry.Valid() {
			skipped++
			continue
		}

		name := entry.Concept
		if cfg.foldCase {
			key := strings.ToLower(name)
			if first, ok := canonical[key]; ok {
				name = first
			} else {
				canonical[key] = name
			}
		}

		if cfg.dedupePerEpisode {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
		}
		names = append(names, name)
	}

	if skipped > 0 {
		logger.Warn("[Graph] Skipped malformed concept entries", "episode_id", ep.ID, "count", skipped)
	}

	return names
}
