package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/project-simone/simone/pkg/cache"
	"github.com/project-simone/simone/pkg/logger"
)

// fillTimeout bounds a shared cache fill once it is detached from its
// caller.
var fillTimeout = 5 * time.Minute

// Locker serializes work on a key across processes.
type Locker interface {
	WithLease(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Cached wraps a CompletionClient and memoizes its answers in a cache.Cache.
// Identical requests running at the same time share one upstream call; with
// a Locker this also holds across processes sharing the store.
type Cached struct {
	client CompletionClient
	store  cache.Cache
	locker Locker
	group  singleflight.Group
}

// NewCached returns a client that serves repeated requests from store.
func NewCached(client CompletionClient, store cache.Cache) *Cached {
	if store == nil {
		store = cache.Noop{}
	}
	return &Cached{client: client, store: store}
}

// WithLocker makes cache misses fill under a lease named after the key.
func (c *Cached) WithLocker(l Locker) *Cached {
	c.locker = l
	return c
}

func requestKey(kind string, opts []GenerateOption, parts ...string) string {
	o := ResolveOptions(GenerateOptions{}, opts...)
	keyParts := append([]string{
		kind,
		o.Model,
		strconv.FormatFloat(o.Temperature, 'f', -1, 64),
		strconv.Itoa(o.MaxTokens),
		o.Thinking,
	}, o.SystemPrompts...)
	keyParts = append(keyParts, "")
	return cache.Key(append(keyParts, parts...)...)
}

func (c *Cached) lookup(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	data, err := c.store.Get(ctx, key)
	if err == nil {
		logger.Debug("[AI] Cache hit", "key", key)
		return data, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("[AI] Cache read failed", "key", key, "err", err)
	}

	// The shared fill outlives the caller that started it so waiting
	// callers are not failed by its cancellation.
	ch := c.group.DoChan(key, func() (any, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()
		if c.locker == nil {
			return c.fill(fillCtx, key, fetch)
		}
		return c.fillLocked(fillCtx, key, fetch)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Cached) fill(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		logger.Warn("[AI] Cache write failed", "key", key, "err", err)
	}
	return data, nil
}

// fillLocked waits for the lease, then checks the store again since another
// process may have filled it meanwhile. A lease that cannot be taken for
// reasons other than cancellation degrades to an unlocked fill.
func (c *Cached) fillLocked(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	var (
		data []byte
		ran  bool
	)
	err := c.locker.WithLease(ctx, "ai:"+key, func(ctx context.Context) error {
		ran = true
		if cached, err := c.store.Get(ctx, key); err == nil {
			logger.Debug("[AI] Cache filled by another holder", "key", key)
			data = cached
			return nil
		}
		var err error
		data, err = c.fill(ctx, key, fetch)
		return err
	})
	if err != nil && !ran && ctx.Err() == nil {
		logger.Warn("[AI] Cache lease unavailable, filling without it", "key", key, "err", err)
		return c.fill(ctx, key, fetch)
	}
	return data, err
}

func (c *Cached) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...GenerateOption,
) (string, error) {
	key := requestKey("completion", opts, prompt)
	data, err := c.lookup(ctx, key, func(ctx context.Context) ([]byte, error) {
		answer, err := c.client.GenerateCompletion(ctx, prompt, opts...)
		return []byte(answer), err
	})
	return string(data), err
}

func (c *Cached) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...GenerateOption,
) error {
	key := requestKey("format", opts, name, description, prompt)
	data, err := c.lookup(ctx, key, func(ctx context.Context) ([]byte, error) {
		if err := c.client.GenerateCompletionWithFormat(ctx, name, description, prompt, out, opts...); err != nil {
			return nil, err
		}
		return json.Marshal(out)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode cached %s response: %w", name, err)
	}
	return nil
}

func (c *Cached) GenerateChat(
	ctx context.Context,
	messages []ChatMessage,
	opts ...GenerateOption,
) (string, error) {
	encoded, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}
	key := requestKey("chat", opts, string(encoded))
	data, err := c.lookup(ctx, key, func(ctx context.Context) ([]byte, error) {
		answer, err := c.client.GenerateChat(ctx, messages, opts...)
		return []byte(answer), err
	})
	return string(data), err
}

func (c *Cached) ResetMetrics() {
	c.client.ResetMetrics()
}

func (c *Cached) GetMetrics() ModelMetrics {
	return c.client.GetMetrics()
}
