package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/cache"
	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/episode"
	"github.com/project-simone/simone/pkg/graph"
	"github.com/project-simone/simone/pkg/insight"
	"github.com/project-simone/simone/pkg/loader"
	"github.com/project-simone/simone/pkg/logger"
)

// ErrEpisodeNotFound is returned for an episode id the corpus does not hold.
var ErrEpisodeNotFound = errors.New("episode not found")

// Params configures an Engine.
type Params struct {
	// Loader provides the episode analysis files. Required.
	Loader loader.EpisodeFileLoader
	// Parallel bounds concurrent file reads during a rebuild.
	Parallel int
	// GraphOptions are passed to graph.Build on every rebuild.
	GraphOptions []graph.BuildOption

	// AI answers model requests. Nil disables the model and every feature
	// uses its local fallback.
	AI ai.CompletionClient
	// Cache memoizes model answers when set.
	Cache cache.Cache
	// Locker coordinates cache fills with other processes sharing Cache.
	Locker        ai.Locker
	AnalysisModel string
	QAModel       string

	// ExportDir receives exports written without an explicit destination.
	ExportDir string
	// Objects uploads exports addressed as s3://bucket/key. When nil a
	// client is created from the environment on first use.
	Objects ObjectWriter
}

type snapshot struct {
	corpus  *episode.Corpus
	graph   *graph.Graph
	builtAt time.Time
}

// Engine owns the loaded corpus and its concept graph. Readers get an
// immutable snapshot; Rebuild swaps in a new one atomically.
type Engine struct {
	loader    loader.EpisodeFileLoader
	parallel  int
	graphOpts []graph.BuildOption

	current   atomic.Pointer[snapshot]
	rebuildMu sync.Mutex

	client    ai.CompletionClient
	generator *insight.Generator
	assistant *insight.Assistant

	exportDir string
	objectsMu sync.Mutex
	objects   ObjectWriter
	now       func() time.Time
}

// New creates an Engine and performs the initial load. It fails when no
// episode can be loaded.
func New(ctx context.Context, p Params) (*Engine, error) {
	if p.Loader == nil {
		return nil, errors.New("engine: loader is required")
	}

	client := p.AI
	if client == nil {
		client = ai.Unavailable{}
	}
	if p.Cache != nil {
		cached := ai.NewCached(client, p.Cache)
		if p.Locker != nil {
			cached.WithLocker(p.Locker)
		}
		client = cached
	}

	e := &Engine{
		loader:    p.Loader,
		parallel:  p.Parallel,
		graphOpts: p.GraphOptions,
		client:    client,
		generator: insight.NewGenerator(client, p.AnalysisModel),
		assistant: insight.NewAssistant(client, p.QAModel),
		exportDir: p.ExportDir,
		objects:   p.Objects,
		now:       time.Now,
	}
	if e.exportDir == "" {
		e.exportDir = "exports"
	}

	if err := e.Rebuild(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Rebuild reloads every episode and builds a new graph. On failure the
// previous corpus and graph stay in place.
func (e *Engine) Rebuild(ctx context.Context) error {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	if r, ok := e.loader.(interface{ Refresh() }); ok {
		r.Refresh()
	}

	start := time.Now()
	corpus, err := episode.Load(ctx, e.loader, e.parallel)
	if err != nil {
		logger.Error("[Engine] Rebuild failed, keeping previous graph", "err", err)
		return fmt.Errorf("rebuild: %w", err)
	}

	g := graph.Build(corpus.All(true), e.graphOpts...)
	e.current.Store(&snapshot{corpus: corpus, graph: g, builtAt: e.now().UTC()})

	logger.Info("[Engine] Rebuild finished",
		"episodes", corpus.Len(),
		"concepts", g.NodeCount(),
		"relationships", g.EdgeCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (e *Engine) snapshot() *snapshot {
	return e.current.Load()
}

// Graph returns the current concept graph.
func (e *Engine) Graph() *graph.Graph {
	return e.snapshot().graph
}

// Corpus returns the current episode corpus.
func (e *Engine) Corpus() *episode.Corpus {
	return e.snapshot().corpus
}

// BuiltAt reports when the current graph was built.
func (e *Engine) BuiltAt() time.Time {
	return e.snapshot().builtAt
}

// Metrics returns the model usage since the last reset.
func (e *Engine) Metrics() ai.ModelMetrics {
	return e.client.GetMetrics()
}

// ConceptMap summarises the whole graph.
func (e *Engine) ConceptMap() *graph.ConceptMapSummary {
	return e.Graph().MapAllConcepts()
}

// Concept describes a single concept.
func (e *Engine) Concept(name string) (*graph.ConceptDetail, error) {
	return e.Graph().MapSingleConcept(name)
}

// Episode returns the episode with id.
func (e *Engine) Episode(id string) (common.Episode, error) {
	ep, ok := e.Corpus().Get(id)
	if !ok {
		return common.Episode{}, fmt.Errorf("%w: %s", ErrEpisodeNotFound, id)
	}
	return ep, nil
}

// Ask answers question across the corpus, or about a single episode when
// episodeID is set.
func (e *Engine) Ask(ctx context.Context, question, episodeID string) (*insight.Answer, error) {
	logger.Info("[Engine] Processing question", "question", truncateLog(question), "episode_id", episodeID)

	if episodeID != "" {
		ep, err := e.Episode(episodeID)
		if err != nil {
			return nil, err
		}
		return e.assistant.AskEpisode(ctx, ep, question)
	}
	return e.assistant.Ask(ctx, e.Corpus().All(true), question)
}

// Insights generates a cross-episode report. Without episodeIDs every
// valid episode is used; unknown ids are skipped.
func (e *Engine) Insights(ctx context.Context, topic string, episodeIDs []string) (*insight.Report, error) {
	corpus := e.Corpus()

	var episodes []common.Episode
	if len(episodeIDs) == 0 {
		episodes = corpus.All(true)
	} else {
		for _, id := range episodeIDs {
			ep, ok := corpus.Get(id)
			if !ok {
				logger.Warn("[Engine] Skipping unknown episode for insights", "episode_id", id)
				continue
			}
			episodes = append(episodes, ep)
		}
	}
	return e.generator.Generate(ctx, episodes, topic)
}

// LearningPath suggests episodes leading from start towards target.
func (e *Engine) LearningPath(ctx context.Context, start, target string, maxEpisodes int) (*insight.LearningPath, error) {
	s := e.snapshot()
	return e.assistant.LearningPath(ctx, s.graph, s.corpus.All(true), start, target, maxEpisodes)
}

func truncateLog(s string) string {
	const limit = 50
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
