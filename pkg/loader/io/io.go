package io

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/project-simone/simone/pkg/loader"
)

// DirLoader loads episode analyses from the top level of a local directory.
// Reads are cached until Refresh is called.
type DirLoader struct {
	root  string
	cache *loader.ReadCache
}

// NewDirLoader creates a filesystem based episode loader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{
		root:  dir,
		cache: loader.NewReadCache(),
	}
}

// List returns the episode files directly inside the directory, sorted by
// name. Subdirectories are not descended into.
func (l *DirLoader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !loader.IsEpisodeFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of a file previously returned by List.
func (l *DirLoader) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid episode file name %q", name)
	}
	return l.cache.Get(name, func() ([]byte, error) {
		return os.ReadFile(filepath.Join(l.root, filepath.FromSlash(name)))
	})
}

// Refresh drops cached file contents so a rebuild sees changes on disk.
func (l *DirLoader) Refresh() {
	l.cache.Reset()
}
