package insight

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/common"
)

var errModelDown = errors.New("model down")

// fakeClient answers structured requests from a table keyed by request name
// and plain completions with a fixed text.
type fakeClient struct {
	mu         sync.Mutex
	formats    map[string]string
	completion string
	err        error
	prompts    []string
	names      []string
}

func (f *fakeClient) GenerateCompletion(_ context.Context, prompt string, _ ...ai.GenerateOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func (f *fakeClient) GenerateCompletionWithFormat(_ context.Context, name, _ string, prompt string, out any, _ ...ai.GenerateOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.names = append(f.names, name)
	if f.err != nil {
		return f.err
	}
	body, ok := f.formats[name]
	if !ok {
		return errModelDown
	}
	return ai.UnmarshalFlexible(body, out)
}

func (f *fakeClient) GenerateChat(context.Context, []ai.ChatMessage, ...ai.GenerateOption) (string, error) {
	return f.completion, f.err
}

func (f *fakeClient) ResetMetrics()               {}
func (f *fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

type epOpt func(*common.Episode)

func withConcepts(names ...string) epOpt {
	return func(e *common.Episode) {
		for _, n := range names {
			e.Concepts = append(e.Concepts, common.ConceptEntry{Concept: n, Definition: "about " + n})
		}
	}
}

func withThemes(themes ...string) epOpt {
	return func(e *common.Episode) { e.Connections.RecurringThemes = themes }
}

func withDay(day int) epOpt {
	return func(e *common.Episode) {
		e.ProcessedDate = time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}
}

func withInsights(items ...string) epOpt {
	return func(e *common.Episode) { e.UniqueInsights = items }
}

func withAdvice(advice, tips []string) epOpt {
	return func(e *common.Episode) {
		e.PracticalWisdom.LifeAdvice = advice
		e.PracticalWisdom.ImplementationTips = tips
	}
}

func invalid() epOpt {
	return func(e *common.Episode) { e.ContentAnalysis.PrimaryTopic = "Analysis failed" }
}

func ep(id, title, topic string, opts ...epOpt) common.Episode {
	e := common.Episode{
		ID:    id,
		Title: title,
		ContentAnalysis: common.ContentAnalysis{
			PrimaryTopic: topic,
			Summary:      common.Summary{Brief: "brief of " + id},
		},
	}
	for _, o := range opts {
		o(&e)
	}
	return e
}
