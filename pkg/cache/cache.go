package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is how long cached model answers stay valid.
const DefaultTTL = 30 * 24 * time.Hour

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores opaque values under string keys. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Key derives a stable cache key from its parts.
func Key(parts ...string) string {
	return digest(strings.Join(parts, "\x1f"))
}

func digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// GetJSON reads key from c and decodes it into a T.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, error) {
	var out T
	data, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return out, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.Set(ctx, key, data)
}

// Noop is a Cache that stores nothing.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte) error   { return nil }
func (Noop) Delete(context.Context, string) error        { return nil }
func (Noop) Clear(context.Context) error                 { return nil }
