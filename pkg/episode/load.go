package episode

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/project-simone/simone/pkg/common"
	"github.com/project-simone/simone/pkg/loader"
	"github.com/project-simone/simone/pkg/logger"
)

const defaultParallel = 8

// Load lists every episode file of l and parses them with up to parallel
// concurrent reads. Files that cannot be read or parsed are logged and
// skipped. Load fails when listing fails, when ctx is cancelled, or when no
// file yields an episode.
func Load(ctx context.Context, l loader.EpisodeFileLoader, parallel int) (*Corpus, error) {
	if parallel <= 0 {
		parallel = defaultParallel
	}
	start := time.Now()

	names, err := l.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list episode files: %w", err)
	}
	logger.Info("[Episode] Loading analysed episodes", "files", len(names))

	results := make([]*common.Episode, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, name := range names {
		g.Go(func() error {
			data, err := l.Read(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Error("[Episode] Failed to read episode file", "file", name, "err", err)
				return nil
			}

			ep, err := Parse(data)
			if err != nil {
				logger.Error("[Episode] Failed to parse episode file", "file", name, "err", err)
				return nil
			}
			results[i] = &ep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	episodes := make([]common.Episode, 0, len(results))
	for _, ep := range results {
		if ep != nil {
			episodes = append(episodes, *ep)
		}
	}
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	corpus := NewCorpus(episodes)
	valid := len(corpus.All(true))
	logger.Info(
		"[Episode] Loaded episodes",
		"episodes", corpus.Len(),
		"valid", valid,
		"skipped", len(names)-len(episodes),
		"duration", time.Since(start),
	)
	return corpus, nil
}
