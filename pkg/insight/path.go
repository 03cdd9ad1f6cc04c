package insight

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/graph"
	"github.com/project-simone/simone/pkg/logger"
)

const defaultPathLength = 5

// PathStep is one episode of a learning path.
type PathStep struct {
	EpisodeID string   `json:"episode_id"`
	Title     string   `json:"title"`
	Concepts  []string `json:"concepts"`
	// Distance is the smallest graph distance from one of the episode's
	// concepts to the target concept, -1 when none is connected to it.
	Distance int    `json:"distance"`
	Reason   string `json:"reason"`
}

// LearningPath guides a listener from a starting concept towards a target.
type LearningPath struct {
	Start  string     `json:"start"`
	Target string     `json:"target"`
	Steps  []PathStep `json:"steps"`
	// Explained is set when the step reasons come from the model.
	Explained bool `json:"explained"`
}

type pathResponse struct {
	Steps []struct {
		EpisodeID string `json:"episode_id"`
		Reason    string `json:"reason"`
	} `json:"steps"`
}

// LearningPath picks up to maxEpisodes valid episodes discussing start and
// orders them so the path moves towards target: episodes whose concepts are
// far from target in g come first, the closest last. When target is not a
// concept of g the episodes keep their processed-date order.
func (a *Assistant) LearningPath(
	ctx context.Context,
	g *graph.Graph,
	episodes []common.Episode,
	start string,
	target string,
	maxEpisodes int,
) (*LearningPath, error) {
	canonical, ok := g.Resolve(start)
	if !ok {
		return nil, &graph.ConceptNotFoundError{Name: start}
	}
	if maxEpisodes <= 0 {
		maxEpisodes = defaultPathLength
	}
	target = strings.TrimSpace(target)

	var dist map[string]int
	if target != "" {
		if d, err := g.Distances(target); err == nil {
			dist = d
		}
	}

	steps := make([]PathStep, 0)
	needle := strings.ToLower(canonical)
	for _, ep := range episodes {
		if !ep.IsValid() {
			continue
		}
		names := ep.ConceptNames()
		if !slices.ContainsFunc(names, func(n string) bool {
			return strings.Contains(strings.ToLower(n), needle)
		}) {
			continue
		}
		steps = append(steps, PathStep{
			EpisodeID: ep.ID,
			Title:     ep.Title,
			Concepts:  head(names, 3),
			Distance:  closest(g, dist, names),
			Reason:    defaultReason(canonical, target),
		})
	}

	byDate := make(map[string]time.Time, len(episodes))
	for _, ep := range episodes {
		byDate[ep.ID] = ep.ProcessedDate
	}
	slices.SortStableFunc(steps, func(x, y PathStep) int {
		if dist != nil {
			if c := cmp.Compare(rankDistance(y.Distance), rankDistance(x.Distance)); c != 0 {
				return c
			}
		}
		return byDate[x.EpisodeID].Compare(byDate[y.EpisodeID])
	})
	steps = head(steps, maxEpisodes)

	path := &LearningPath{Start: canonical, Target: target, Steps: steps}
	if len(steps) > 0 && target != "" {
		path.Explained = a.explainPath(ctx, path)
	}
	return path, nil
}

// rankDistance orders unconnected episodes before every connected one.
func rankDistance(d int) int {
	if d < 0 {
		return int(^uint(0) >> 1)
	}
	return d
}

func closest(g *graph.Graph, dist map[string]int, names []string) int {
	if dist == nil {
		return -1
	}
	best := -1
	for _, n := range names {
		canonical, ok := g.Resolve(n)
		if !ok {
			continue
		}
		if d, ok := dist[canonical]; ok && (best < 0 || d < best) {
			best = d
		}
	}
	return best
}

func defaultReason(start, target string) string {
	if target == "" {
		return "Explores " + start
	}
	return fmt.Sprintf("Explores %s on the way to %s", start, target)
}

func (a *Assistant) explainPath(ctx context.Context, path *LearningPath) bool {
	var b strings.Builder
	for i, s := range path.Steps {
		fmt.Fprintf(&b, "%d. [%s] %s (concepts: %s)\n", i+1, s.EpisodeID, s.Title, strings.Join(s.Concepts, ", "))
	}
	prompt := fmt.Sprintf(ai.LearningPathPrompt, path.Start, path.Target, b.String())

	var resp pathResponse
	if err := a.client.GenerateCompletionWithFormat(ctx, "learning_path", "", prompt, &resp, a.opts...); err != nil {
		logger.Warn("[Insight] Learning path explanation failed", "start", path.Start, "err", err)
		return false
	}

	reasons := make(map[string]string, len(resp.Steps))
	for _, s := range resp.Steps {
		reasons[s.EpisodeID] = strings.TrimSpace(s.Reason)
	}
	explained := false
	for i := range path.Steps {
		if r := reasons[path.Steps[i].EpisodeID]; r != "" {
			path.Steps[i].Reason = r
			explained = true
		}
	}
	return explained
}
