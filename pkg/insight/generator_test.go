package insight

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/project-simone/simone/pkg/common"
)

func corpus() []common.Episode {
	return []common.Episode{
		ep("ep-2", "Seneca on Time", "Stoicism", withDay(2),
			withConcepts("Time", "Virtue", "Death"), withThemes("mortality", "virtue"),
			withInsights("Time is the only thing we own", "Busy is not full", "third"),
			withAdvice([]string{"Guard your hours"}, []string{"Keep a time journal"})),
		ep("ep-1", "Socrates and the Examined Life", "Ethics", withDay(1),
			withConcepts("Virtue", "Self-knowledge"), withThemes("virtue"),
			withAdvice([]string{"Question yourself"}, []string{"Evening review"})),
		ep("ep-3", "Camus", "Absurdism", withDay(3),
			withConcepts("Absurd"), withThemes("mortality", "virtue", "revolt")),
	}
}

func newTestGenerator(client *fakeClient) *Generator {
	g := NewGenerator(client, "analysis")
	g.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate_NoEpisodes(t *testing.T) {
	g := newTestGenerator(&fakeClient{})
	if _, err := g.Generate(context.Background(), nil, ""); !errors.Is(err, ErrNoEpisodes) {
		t.Fatalf("Generate() error = %v, want ErrNoEpisodes", err)
	}
}

func TestGenerate_Fallbacks(t *testing.T) {
	g := newTestGenerator(&fakeClient{err: errModelDown})

	r, err := g.Generate(context.Background(), corpus(), "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if r.Topic != "General Philosophy" || r.EpisodeCount != 3 {
		t.Errorf("header = %q/%d", r.Topic, r.EpisodeCount)
	}
	if !r.GeneratedAt.Equal(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("GeneratedAt = %v", r.GeneratedAt)
	}

	wantEvolution := []EvolutionPoint{{Theme: "Philosophy", Description: "Theme evolution analysis"}}
	if !reflect.DeepEqual(r.ThematicEvolution, wantEvolution) {
		t.Errorf("ThematicEvolution = %+v", r.ThematicEvolution)
	}
	if len(r.SynthesizedWisdom.CorePrinciples) != 3 || r.SynthesizedWisdom.CorePrinciples[0] != "Examine life deeply" {
		t.Errorf("SynthesizedWisdom = %+v", r.SynthesizedWisdom)
	}

	wantPatterns := []Pattern{{
		PatternType: "thematic_recurrence",
		Description: "Themes that appear across multiple episodes",
		TopThemes: []ThemeCount{
			{Theme: "virtue", Count: 3},
			{Theme: "mortality", Count: 2},
			{Theme: "revolt", Count: 1},
		},
	}}
	if !reflect.DeepEqual(r.Patterns, wantPatterns) {
		t.Errorf("Patterns = %+v, want %+v", r.Patterns, wantPatterns)
	}

	if len(r.Contradictions) != 0 || r.Contradictions == nil {
		t.Errorf("Contradictions = %#v, want empty non-nil", r.Contradictions)
	}

	wantContrib := []Contribution{
		{Insight: "Time is the only thing we own", Episode: "Seneca on Time", Context: "Stoicism"},
		{Insight: "Busy is not full", Episode: "Seneca on Time", Context: "Stoicism"},
	}
	if !reflect.DeepEqual(r.UniqueContributions, wantContrib) {
		t.Errorf("UniqueContributions = %+v", r.UniqueContributions)
	}

	wantApps := Applications{
		DailyPractices: []string{"Keep a time journal", "Evening review"},
		MindsetTools:   []string{"Guard your hours", "Question yourself"},
	}
	if !reflect.DeepEqual(r.PracticalApplications, wantApps) {
		t.Errorf("PracticalApplications = %+v", r.PracticalApplications)
	}

	if !reflect.DeepEqual(r.MetaInsights, fallbackMetaInsights) {
		t.Errorf("MetaInsights = %v", r.MetaInsights)
	}
}

func TestGenerate_ModelSections(t *testing.T) {
	client := &fakeClient{formats: map[string]string{
		"thematic_evolution":     `{"points":[{"theme":"virtue","evolution_type":"deepening","episodes_involved":["Socrates and the Examined Life"],"description":"grows"}]}`,
		"synthesized_wisdom":     `{"core_principles":["Live by nature"],"key_practices":["Journal"],"pitfalls":[],"integration_strategies":[]}`,
		"philosophical_patterns": `{"patterns":[{"pattern_type":"opposing_pairs","description":"virtue vs absurd","concepts":["Virtue","Absurd"]}]}`,
		"contradictions":         `{"findings":[{"type":"tension","episodes_involved":["Camus","Seneca on Time"],"description":"meaning","philosophical_significance":"high"}]}`,
		"unique_contributions":   `{"contributions":[{"insight":"Busy is not full","episode":"Seneca on Time","uniqueness_reason":"inverts","practical_value":"focus"}]}`,
		"practical_applications": `{"thirty_day_plan":["Day 1"],"decision_frameworks":["Dichotomy of control"],"experiments":[],"integration_tips":[]}`,
		"meta_insights":          `{"insights":["Stoic core"]}`,
	}}
	g := newTestGenerator(client)

	r, err := g.Generate(context.Background(), corpus(), "virtue")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if r.Topic != "virtue" {
		t.Errorf("Topic = %q", r.Topic)
	}
	if len(r.ThematicEvolution) != 1 || r.ThematicEvolution[0].EvolutionType != "deepening" {
		t.Errorf("ThematicEvolution = %+v", r.ThematicEvolution)
	}
	if !reflect.DeepEqual(r.SynthesizedWisdom.CorePrinciples, []string{"Live by nature"}) {
		t.Errorf("SynthesizedWisdom = %+v", r.SynthesizedWisdom)
	}
	if len(r.Patterns) != 2 || r.Patterns[1].PatternType != "opposing_pairs" {
		t.Errorf("Patterns = %+v", r.Patterns)
	}
	if len(r.Contradictions) != 1 || r.Contradictions[0].Type != "tension" {
		t.Errorf("Contradictions = %+v", r.Contradictions)
	}
	if len(r.UniqueContributions) != 1 || r.UniqueContributions[0].UniquenessReason != "inverts" {
		t.Errorf("UniqueContributions = %+v", r.UniqueContributions)
	}
	if !reflect.DeepEqual(r.PracticalApplications.DecisionFrameworks, []string{"Dichotomy of control"}) {
		t.Errorf("PracticalApplications = %+v", r.PracticalApplications)
	}
	if !reflect.DeepEqual(r.MetaInsights, []string{"Stoic core"}) {
		t.Errorf("MetaInsights = %v", r.MetaInsights)
	}

	for _, p := range client.prompts {
		if strings.Contains(p, "%!") {
			t.Errorf("prompt has formatting error: %s", p)
		}
	}
}

func TestThematicEvolution_PromptOrderedByDate(t *testing.T) {
	client := &fakeClient{err: errModelDown}
	g := newTestGenerator(client)

	g.thematicEvolution(context.Background(), corpus(), "virtue")

	prompt := client.prompts[0]
	first := strings.Index(prompt, "Socrates and the Examined Life")
	second := strings.Index(prompt, "Seneca on Time")
	third := strings.Index(prompt, "Camus")
	if first < 0 || !(first < second && second < third) {
		t.Errorf("episodes not in date order in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Focus on topic: virtue") {
		t.Errorf("prompt missing topic focus")
	}
}

func TestThemeRecurrence_LimitAndTies(t *testing.T) {
	eps := []common.Episode{
		ep("a", "A", "t", withThemes("t1", "t2", "t3")),
		ep("b", "B", "t", withThemes("t4", "t5", "t6", "t2")),
	}
	got := themeRecurrence(eps)
	want := []ThemeCount{{"t2", 2}, {"t1", 1}, {"t3", 1}, {"t4", 1}, {"t5", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("themeRecurrence() = %v, want %v", got, want)
	}
}

func TestUniqueContributions_NoInsightsSkipsModel(t *testing.T) {
	client := &fakeClient{}
	g := newTestGenerator(client)

	got := g.uniqueContributions(context.Background(), []common.Episode{ep("a", "A", "t")})
	if len(got) != 0 {
		t.Errorf("uniqueContributions() = %v, want empty", got)
	}
	if len(client.names) != 0 {
		t.Errorf("model called %v, want no calls", client.names)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGenerator(&fakeClient{err: context.Canceled})
	if _, err := g.Generate(ctx, corpus(), ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}
