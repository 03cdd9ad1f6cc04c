package loader

import (
	"context"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// EpisodeFileLoader lists and reads episode analysis files. Implementations
// may load files from disk, cloud storage, or other sources.
//
// Names returned by List are opaque to callers and are passed back to Read
// unchanged.
type EpisodeFileLoader interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// Bookkeeping files written next to the analyses by the analysis pipeline.
var bookkeepingFiles = map[string]struct{}{
	"episode_index.json":         {},
	"processing_checkpoint.json": {},
}

// IsEpisodeFile reports whether name looks like an episode analysis: a .json
// file that is neither a pipeline bookkeeping file nor part of a batch
// result dump.
func IsEpisodeFile(name string) bool {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if !strings.HasSuffix(base, ".json") {
		return false
	}
	if _, skip := bookkeepingFiles[base]; skip {
		return false
	}
	return !strings.Contains(name, "batch_results")
}

// ReadCache memoises file reads. Concurrent reads of the same key share a
// single fetch.
type ReadCache struct {
	mu    sync.RWMutex
	data  map[string][]byte
	group singleflight.Group
}

func NewReadCache() *ReadCache {
	return &ReadCache{data: make(map[string][]byte)}
}

// Get returns the cached bytes for key, calling fetch on a miss.
func (c *ReadCache) Get(key string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	if cached, ok := c.data[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		if cached, ok := c.data[key]; ok {
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		b, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.data[key] = b
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Reset drops every cached entry so the next read goes to the source.
func (c *ReadCache) Reset() {
	c.mu.Lock()
	c.data = make(map[string][]byte)
	c.mu.Unlock()
}
