package insight

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/logger"
)

const (
	contextEpisodes   = 5
	contextBudget     = 3000
	perEpisodeBudget  = 600
	minKeywordRunes   = 3
	answerTokens      = 1000
	noMatchAnswer     = "I couldn't find specific episodes about that topic. Try asking about concepts like Stoicism, consciousness, freedom, or specific philosophers."
	fallbackEpisodes  = 3
	fallbackNoteModel = "The language model is unavailable, so this answer only lists the matching episode content."
)

// Source is an episode used as context for an answer.
type Source struct {
	EpisodeID string `json:"episode_id"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
}

// Answer is the response to a question about the corpus.
type Answer struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources"`
	// Citations are the source episodes the answer cites, in order of
	// first mention.
	Citations []string `json:"citations"`
	// Fallback is set when the answer was assembled without the model.
	Fallback bool `json:"fallback"`
}

// Assistant answers questions about the episodes.
type Assistant struct {
	client ai.CompletionClient
	opts   []ai.GenerateOption
}

// NewAssistant returns an Assistant that queries client with model.
func NewAssistant(client ai.CompletionClient, model string) *Assistant {
	return &Assistant{
		client: client,
		opts: []ai.GenerateOption{
			ai.WithModel(model),
			ai.WithSystemPrompts(ai.AnalystSystemPrompt),
			ai.WithTemperature(0.7),
			ai.WithMaxTokens(answerTokens),
		},
	}
}

// Keywords splits a question into lower case search terms, dropping
// punctuation and words shorter than three letters.
func Keywords(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= minKeywordRunes && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Relevance scores an episode against keywords: two points per keyword in
// the title and one each for the primary topic and the concept names.
func Relevance(ep common.Episode, keywords []string) int {
	title := strings.ToLower(ep.Title)
	topic := strings.ToLower(ep.ContentAnalysis.PrimaryTopic)
	concepts := strings.ToLower(strings.Join(ep.ConceptNames(), " "))

	score := 0
	for _, k := range keywords {
		if strings.Contains(title, k) {
			score += 2
		}
		if strings.Contains(topic, k) {
			score++
		}
		if strings.Contains(concepts, k) {
			score++
		}
	}
	return score
}

type scored struct {
	episode common.Episode
	score   int
}

// rank returns the valid episodes with a positive score, best first. Equal
// scores keep corpus order.
func rank(episodes []common.Episode, question string) []scored {
	keywords := Keywords(question)
	var out []scored
	for _, ep := range episodes {
		if !ep.IsValid() {
			continue
		}
		if s := Relevance(ep, keywords); s > 0 {
			out = append(out, scored{episode: ep, score: s})
		}
	}
	slices.SortStableFunc(out, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	return out
}

func episodeContext(ep common.Episode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[[%s]] %s\n", ep.ID, ep.Title)
	fmt.Fprintf(&b, "Topic: %s\n", ep.ContentAnalysis.PrimaryTopic)
	fmt.Fprintf(&b, "Key Points: %s\n", ep.ContentAnalysis.Summary.Brief)
	if names := ep.ConceptNames(); len(names) > 0 {
		fmt.Fprintf(&b, "Concepts: %s\n", strings.Join(head(names, 5), ", "))
	}
	return ai.TruncateToTokens(b.String(), perEpisodeBudget)
}

// buildContext joins episode blocks until the token budget is spent. At
// least one block is always included.
func buildContext(ranked []scored) (string, []Source) {
	var parts []string
	var sources []Source
	used := 0
	for _, r := range head(ranked, contextEpisodes) {
		block := episodeContext(r.episode)
		tokens := ai.CountTokens(block)
		if len(parts) > 0 && used+tokens > contextBudget {
			break
		}
		used += tokens
		parts = append(parts, block)
		sources = append(sources, Source{EpisodeID: r.episode.ID, Title: r.episode.Title, Score: r.score})
	}
	return strings.Join(parts, "\n---\n"), sources
}

// Ask answers question from the episodes most relevant to it.
func (a *Assistant) Ask(ctx context.Context, episodes []common.Episode, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	ranked := rank(episodes, question)
	if len(ranked) == 0 {
		return &Answer{Question: question, Answer: noMatchAnswer, Sources: []Source{}, Citations: []string{}, Fallback: true}, nil
	}

	contextText, sources := buildContext(ranked)
	prompt := fmt.Sprintf(ai.QueryPrompt, contextText, question)

	text, err := a.client.GenerateCompletion(ctx, prompt, a.opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("[Insight] Answer generation failed, listing matches", "err", err)
		return fallbackAnswer(question, ranked, sources), nil
	}

	return finishAnswer(question, text, sources), nil
}

// AskEpisode answers question using one episode as context.
func (a *Assistant) AskEpisode(ctx context.Context, ep common.Episode, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}
	sources := []Source{{EpisodeID: ep.ID, Title: ep.Title}}

	prompt := fmt.Sprintf(ai.EpisodeQueryPrompt, episodeDetail(ep), ep.ID, question)
	text, err := a.client.GenerateCompletion(ctx, prompt, a.opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("[Insight] Episode answer failed, returning overview", "episode_id", ep.ID, "err", err)
		return &Answer{
			Question:  question,
			Answer:    episodeDetail(ep) + "\n" + fallbackNoteModel,
			Sources:   sources,
			Citations: []string{},
			Fallback:  true,
		}, nil
	}
	return finishAnswer(question, text, sources), nil
}

func episodeDetail(ep common.Episode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Episode: %s\n", ep.Title)
	fmt.Fprintf(&b, "Summary: %s\n", cmp.Or(ep.ContentAnalysis.Summary.Detailed, ep.ContentAnalysis.Summary.Brief))

	b.WriteString("\nKey Concepts:\n")
	n := 0
	for _, c := range ep.Concepts {
		if !c.Valid() {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", c.Concept, c.Definition)
		if n++; n == 5 {
			break
		}
	}

	writeList(&b, "Life Advice", ep.PracticalWisdom.LifeAdvice)
	writeList(&b, "Mindset Shifts", ep.PracticalWisdom.MindsetShifts)
	writeList(&b, "Implementation Tips", ep.PracticalWisdom.ImplementationTips)
	writeList(&b, "Unique Insights", head(ep.UniqueInsights, 5))
	return ai.TruncateToTokens(b.String(), contextBudget)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func finishAnswer(question, text string, sources []Source) *Answer {
	text = util.NormalizeCitations(strings.TrimSpace(text))

	known := make(map[string]bool, len(sources))
	for _, s := range sources {
		known[s.EpisodeID] = true
	}
	citations := make([]string, 0)
	for _, id := range util.ExtractCitations(text) {
		if known[id] {
			citations = append(citations, id)
		}
	}
	return &Answer{Question: question, Answer: text, Sources: sources, Citations: citations}
}

func fallbackAnswer(question string, ranked []scored, sources []Source) *Answer {
	var b strings.Builder
	citations := make([]string, 0, fallbackEpisodes)
	b.WriteString("Based on the episode content, here's what I found:\n\n")
	for _, r := range head(ranked, fallbackEpisodes) {
		ep := r.episode
		fmt.Fprintf(&b, "**%s** [[%s]]\n%s\n\n", ep.Title, ep.ID, util.Truncate(ep.ContentAnalysis.Summary.Brief, 200))
		citations = append(citations, ep.ID)
	}
	b.WriteString(fallbackNoteModel)
	return &Answer{
		Question:  question,
		Answer:    b.String(),
		Sources:   sources,
		Citations: citations,
		Fallback:  true,
	}
}
