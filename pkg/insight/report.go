package insight

import "time"

// Report is the cross-episode synthesis produced by Generator.Generate.
type Report struct {
	Topic                 string           `json:"topic"`
	EpisodeCount          int              `json:"episode_count"`
	GeneratedAt           time.Time        `json:"generated_at"`
	ThematicEvolution     []EvolutionPoint `json:"thematic_evolution"`
	SynthesizedWisdom     Wisdom           `json:"synthesized_wisdom"`
	Patterns              []Pattern        `json:"philosophical_patterns"`
	Contradictions        []Contradiction  `json:"contradictions_paradoxes"`
	UniqueContributions   []Contribution   `json:"unique_contributions"`
	PracticalApplications Applications     `json:"practical_applications"`
	MetaInsights          []string         `json:"meta_insights"`
}

// EvolutionPoint describes how a theme develops over several episodes.
type EvolutionPoint struct {
	Theme            string   `json:"theme"`
	EvolutionType    string   `json:"evolution_type"`
	EpisodesInvolved []string `json:"episodes_involved"`
	Description      string   `json:"description"`
}

// Wisdom is the practical guide distilled from the episodes' advice.
type Wisdom struct {
	CorePrinciples        []string `json:"core_principles"`
	KeyPractices          []string `json:"key_practices"`
	Pitfalls              []string `json:"pitfalls"`
	IntegrationStrategies []string `json:"integration_strategies"`
}

// ThemeCount is a recurring theme with the number of episodes naming it.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Pattern is either a locally computed theme recurrence or a conceptual
// pattern suggested by the model.
type Pattern struct {
	PatternType string       `json:"pattern_type"`
	Description string       `json:"description"`
	Concepts    []string     `json:"concepts,omitempty"`
	TopThemes   []ThemeCount `json:"top_themes,omitempty"`
}

// Contradiction is a tension between positions taken in different episodes.
type Contradiction struct {
	Type                      string   `json:"type"`
	EpisodesInvolved          []string `json:"episodes_involved"`
	Description               string   `json:"description"`
	PhilosophicalSignificance string   `json:"philosophical_significance"`
}

// Contribution is an insight singled out as novel.
type Contribution struct {
	Insight          string `json:"insight"`
	Episode          string `json:"episode"`
	Context          string `json:"context,omitempty"`
	UniquenessReason string `json:"uniqueness_reason,omitempty"`
	PracticalValue   string `json:"practical_value,omitempty"`
}

// Applications turns the collected advice into an actionable framework.
// When the model is unavailable only the collected practices and tools are
// filled.
type Applications struct {
	ThirtyDayPlan      []string `json:"thirty_day_plan,omitempty"`
	DecisionFrameworks []string `json:"decision_frameworks,omitempty"`
	Experiments        []string `json:"experiments,omitempty"`
	IntegrationTips    []string `json:"integration_tips,omitempty"`
	DailyPractices     []string `json:"daily_practices,omitempty"`
	MindsetTools       []string `json:"mindset_tools,omitempty"`
}

// Response shapes requested from the model. Structured output needs an
// object at the root, so list answers are wrapped.
type (
	evolutionResponse struct {
		Points []EvolutionPoint `json:"points"`
	}
	patternItem struct {
		PatternType string   `json:"pattern_type"`
		Description string   `json:"description"`
		Concepts    []string `json:"concepts"`
	}
	patternResponse struct {
		Patterns []patternItem `json:"patterns"`
	}
	contradictionResponse struct {
		Findings []Contradiction `json:"findings"`
	}
	contributionItem struct {
		Insight          string `json:"insight"`
		Episode          string `json:"episode"`
		UniquenessReason string `json:"uniqueness_reason"`
		PracticalValue   string `json:"practical_value"`
	}
	contributionResponse struct {
		Contributions []contributionItem `json:"contributions"`
	}
	applicationResponse struct {
		ThirtyDayPlan      []string `json:"thirty_day_plan"`
		DecisionFrameworks []string `json:"decision_frameworks"`
		Experiments        []string `json:"experiments"`
		IntegrationTips    []string `json:"integration_tips"`
	}
	metaResponse struct {
		Insights []string `json:"insights"`
	}
)
