package insight

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/logger"
)

// ErrNoEpisodes is returned when an operation is asked to work on an empty
// episode set.
var ErrNoEpisodes = errors.New("no episodes provided")

const (
	defaultTopic    = "General Philosophy"
	sampleEpisodes  = 10
	sampleAdvice    = 20
	sampleTools     = 10
	topThemeCount   = 5
	insightsPerEp   = 2
	sampleInsights  = 20
	fallbackInsight = 5
)

// Generator synthesizes insights across a set of episodes. Every section
// that relies on the model degrades to a locally computed default when the
// model call fails, so a Report is always complete.
type Generator struct {
	client ai.CompletionClient
	opts   []ai.GenerateOption
	now    func() time.Time
}

// NewGenerator returns a Generator that sends its prompts to client using
// model. An empty model leaves the client default in place.
func NewGenerator(client ai.CompletionClient, model string) *Generator {
	return &Generator{
		client: client,
		opts: []ai.GenerateOption{
			ai.WithModel(model),
			ai.WithSystemPrompts(ai.AnalystSystemPrompt),
			ai.WithTemperature(0.3),
		},
		now: time.Now,
	}
}

// Generate builds a Report for episodes. An empty topic analyses the
// episodes without a focus.
func (g *Generator) Generate(ctx context.Context, episodes []common.Episode, topic string) (*Report, error) {
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}
	logger.Info("[Insight] Generating insights", "episodes", len(episodes), "topic", cmp.Or(topic, "all"))

	report := &Report{
		Topic:        cmp.Or(topic, defaultTopic),
		EpisodeCount: len(episodes),
		GeneratedAt:  g.now().UTC(),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		report.ThematicEvolution = g.thematicEvolution(egCtx, episodes, topic)
		return nil
	})
	eg.Go(func() error {
		report.SynthesizedWisdom = g.synthesizeWisdom(egCtx, episodes, topic)
		return nil
	})
	eg.Go(func() error {
		report.Patterns = g.patterns(egCtx, episodes)
		return nil
	})
	eg.Go(func() error {
		report.Contradictions = g.contradictions(egCtx, episodes)
		return nil
	})
	eg.Go(func() error {
		report.UniqueContributions = g.uniqueContributions(egCtx, episodes)
		return nil
	})
	eg.Go(func() error {
		report.PracticalApplications = g.practicalApplications(egCtx, episodes, topic)
		return nil
	})
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.MetaInsights = g.metaInsights(ctx, report)
	return report, nil
}

func (g *Generator) ask(ctx context.Context, name, prompt string, out any) error {
	err := g.client.GenerateCompletionWithFormat(ctx, name, "", prompt, out, g.opts...)
	if err != nil {
		logger.Warn("[Insight] Model call failed, using fallback", "section", name, "err", err)
	}
	return err
}

func focusLine(prefix, topic string) string {
	if topic == "" {
		return ""
	}
	return prefix + topic
}

func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (g *Generator) thematicEvolution(ctx context.Context, episodes []common.Episode, topic string) []EvolutionPoint {
	sorted := slices.Clone(episodes)
	slices.SortStableFunc(sorted, func(a, b common.Episode) int {
		return a.ProcessedDate.Compare(b.ProcessedDate)
	})

	type summary struct {
		Title       string   `json:"title"`
		Date        string   `json:"date"`
		Topic       string   `json:"topic"`
		KeyConcepts []string `json:"key_concepts"`
	}
	summaries := make([]summary, 0, sampleEpisodes)
	for _, ep := range head(sorted, sampleEpisodes) {
		summaries = append(summaries, summary{
			Title:       ep.Title,
			Date:        ep.ProcessedDate.Format(time.RFC3339),
			Topic:       ep.ContentAnalysis.PrimaryTopic,
			KeyConcepts: head(ep.ConceptNames(), 3),
		})
	}

	prompt := fmt.Sprintf(ai.EvolutionPrompt, toJSON(summaries), focusLine("Focus on topic: ", topic))
	var resp evolutionResponse
	if err := g.ask(ctx, "thematic_evolution", prompt, &resp); err != nil || len(resp.Points) == 0 {
		return []EvolutionPoint{{
			Theme:       cmp.Or(topic, "Philosophy"),
			Description: "Theme evolution analysis",
		}}
	}
	return resp.Points
}

func collectAdvice(episodes []common.Episode) (lifeAdvice, mindsetShifts, tips []string) {
	for _, ep := range episodes {
		lifeAdvice = append(lifeAdvice, ep.PracticalWisdom.LifeAdvice...)
		mindsetShifts = append(mindsetShifts, ep.PracticalWisdom.MindsetShifts...)
		tips = append(tips, ep.PracticalWisdom.ImplementationTips...)
	}
	return lifeAdvice, mindsetShifts, tips
}

func (g *Generator) synthesizeWisdom(ctx context.Context, episodes []common.Episode, topic string) Wisdom {
	lifeAdvice, mindsetShifts, _ := collectAdvice(episodes)

	prompt := fmt.Sprintf(ai.WisdomPrompt,
		toJSON(head(lifeAdvice, sampleAdvice)),
		toJSON(head(mindsetShifts, sampleAdvice)),
		focusLine("Focus on topic: ", topic),
	)
	var resp Wisdom
	if err := g.ask(ctx, "synthesized_wisdom", prompt, &resp); err != nil || len(resp.CorePrinciples) == 0 {
		return Wisdom{
			CorePrinciples: []string{"Examine life deeply", "Question assumptions", "Seek practical wisdom"},
			KeyPractices:   []string{"Daily reflection", "Socratic questioning", "Mindful action"},
		}
	}
	return resp
}

// themeRecurrence counts how many episodes name each recurring theme. Ties
// keep first-seen order.
func themeRecurrence(episodes []common.Episode) []ThemeCount {
	index := make(map[string]int)
	var counts []ThemeCount
	for _, ep := range episodes {
		for _, theme := range ep.Connections.RecurringThemes {
			i, ok := index[theme]
			if !ok {
				i = len(counts)
				index[theme] = i
				counts = append(counts, ThemeCount{Theme: theme})
			}
			counts[i].Count++
		}
	}
	slices.SortStableFunc(counts, func(a, b ThemeCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return head(counts, topThemeCount)
}

func (g *Generator) patterns(ctx context.Context, episodes []common.Episode) []Pattern {
	patterns := make([]Pattern, 0)

	if top := themeRecurrence(episodes); len(top) > 0 {
		patterns = append(patterns, Pattern{
			PatternType: "thematic_recurrence",
			Description: "Themes that appear across multiple episodes",
			TopThemes:   top,
		})
	}

	var sample []string
	for _, ep := range head(episodes, sampleEpisodes) {
		sample = append(sample, head(ep.ConceptNames(), 2)...)
	}
	if len(sample) == 0 {
		return patterns
	}

	var resp patternResponse
	if err := g.ask(ctx, "philosophical_patterns", fmt.Sprintf(ai.PatternPrompt, toJSON(sample)), &resp); err != nil {
		return patterns
	}
	for _, p := range resp.Patterns {
		patterns = append(patterns, Pattern{
			PatternType: p.PatternType,
			Description: p.Description,
			Concepts:    p.Concepts,
		})
	}
	return patterns
}

func (g *Generator) contradictions(ctx context.Context, episodes []common.Episode) []Contradiction {
	type position struct {
		Episode  string `json:"episode"`
		Position string `json:"position"`
	}
	positions := make([]position, 0, sampleEpisodes)
	for _, ep := range head(episodes, sampleEpisodes) {
		positions = append(positions, position{
			Episode:  ep.Title,
			Position: ep.ContentAnalysis.Summary.Brief + " " + ep.ContentAnalysis.MainThesis,
		})
	}

	var resp contradictionResponse
	if err := g.ask(ctx, "contradictions", fmt.Sprintf(ai.ContradictionPrompt, toJSON(positions)), &resp); err != nil || resp.Findings == nil {
		return []Contradiction{}
	}
	return resp.Findings
}

func (g *Generator) uniqueContributions(ctx context.Context, episodes []common.Episode) []Contribution {
	collected := make([]Contribution, 0)
	for _, ep := range episodes {
		for _, text := range head(ep.UniqueInsights, insightsPerEp) {
			collected = append(collected, Contribution{
				Insight: text,
				Episode: ep.Title,
				Context: ep.ContentAnalysis.PrimaryTopic,
			})
		}
	}
	if len(collected) == 0 {
		return collected
	}

	var resp contributionResponse
	err := g.ask(ctx, "unique_contributions", fmt.Sprintf(ai.UniquePrompt, toJSON(head(collected, sampleInsights))), &resp)
	if err != nil || len(resp.Contributions) == 0 {
		return head(collected, fallbackInsight)
	}

	out := make([]Contribution, 0, len(resp.Contributions))
	for _, c := range resp.Contributions {
		out = append(out, Contribution{
			Insight:          c.Insight,
			Episode:          c.Episode,
			UniquenessReason: c.UniquenessReason,
			PracticalValue:   c.PracticalValue,
		})
	}
	return out
}

func (g *Generator) practicalApplications(ctx context.Context, episodes []common.Episode, topic string) Applications {
	lifeAdvice, _, tips := collectAdvice(episodes)

	prompt := fmt.Sprintf(ai.ApplicationPrompt,
		toJSON(head(tips, sampleTools)),
		toJSON(head(lifeAdvice, sampleTools)),
		focusLine("Focus on applications for: ", topic),
	)
	var resp applicationResponse
	if err := g.ask(ctx, "practical_applications", prompt, &resp); err != nil {
		return Applications{
			DailyPractices: tips,
			MindsetTools:   lifeAdvice,
		}
	}
	return Applications{
		ThirtyDayPlan:      resp.ThirtyDayPlan,
		DecisionFrameworks: resp.DecisionFrameworks,
		Experiments:        resp.Experiments,
		IntegrationTips:    resp.IntegrationTips,
	}
}

var fallbackMetaInsights = []string{
	"The podcast bridges academic philosophy with practical life application",
	"Emphasis on making complex ideas accessible through examples",
	"Regular integration of Eastern and Western philosophical traditions",
}

func (g *Generator) metaInsights(ctx context.Context, r *Report) []string {
	prompt := fmt.Sprintf(ai.MetaPrompt,
		len(r.ThematicEvolution),
		len(r.Patterns),
		len(r.Contradictions),
		len(r.UniqueContributions),
	)
	var resp metaResponse
	if err := g.ask(ctx, "meta_insights", prompt, &resp); err != nil || len(resp.Insights) == 0 {
		return slices.Clone(fallbackMetaInsights)
	}
	return resp.Insights
}
