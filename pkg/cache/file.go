package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/project-simone/simone/pkg/logger"
)

const fileExt = ".json"

// FileCache stores each entry as a file named after the md5 digest of its
// key. An entry expires once its modification time is older than the TTL;
// expired entries are removed lazily on Get or in bulk by CleanupExpired.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// FileStats describes the contents of a FileCache directory.
type FileStats struct {
	TotalFiles   int    `json:"total_files"`
	TotalBytes   int64  `json:"total_bytes"`
	ExpiredFiles int    `json:"expired_files"`
	Directory    string `json:"cache_directory"`
}

// NewFileCache creates dir if needed. A ttl <= 0 disables expiry.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	logger.Info("[Cache] File cache initialised", "dir", dir, "ttl", ttl)
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, digest(key)+fileExt)
}

func (c *FileCache) expired(info fs.FileInfo) bool {
	return c.ttl > 0 && c.now().Sub(info.ModTime()) > c.ttl
}

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, error) {
	p := c.path(key)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	if c.expired(info) {
		logger.Debug("[Cache] Entry expired", "key", key)
		_ = os.Remove(p)
		return nil, ErrMiss
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMiss
	}
	return data, err
}

// Set writes through a temporary file so readers never see partial data.
func (c *FileCache) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *FileCache) Clear(ctx context.Context) error {
	count := 0
	err := c.walk(func(path string, _ fs.FileInfo) error {
		if err := os.Remove(path); err != nil {
			return err
		}
		count++
		return nil
	})
	logger.Info("[Cache] Cleared cache files", "count", count)
	return err
}

// CleanupExpired removes every expired entry and returns how many were
// deleted.
func (c *FileCache) CleanupExpired(ctx context.Context) (int, error) {
	count := 0
	err := c.walk(func(path string, info fs.FileInfo) error {
		if !c.expired(info) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		count++
		return nil
	})
	logger.Info("[Cache] Cleaned up expired cache files", "count", count)
	return count, err
}

// Stats reports the number, size and expiry state of cached entries.
func (c *FileCache) Stats() (FileStats, error) {
	stats := FileStats{Directory: c.dir}
	err := c.walk(func(_ string, info fs.FileInfo) error {
		stats.TotalFiles++
		stats.TotalBytes += info.Size()
		if c.expired(info) {
			stats.ExpiredFiles++
		}
		return nil
	})
	return stats, err
}

func (c *FileCache) walk(fn func(path string, info fs.FileInfo) error) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		info, err := e.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(filepath.Join(c.dir, e.Name()), info); err != nil {
			return err
		}
	}
	return nil
}
