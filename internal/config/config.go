// Package config builds the engine and its dependencies from environment
// variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/ai"
	oai "github.com/project-simone/simone/pkg/ai/ollama"
	gai "github.com/project-simone/simone/pkg/ai/openai"
	"github.com/project-simone/simone/pkg/cache"
	"github.com/project-simone/simone/pkg/engine"
	"github.com/project-simone/simone/pkg/graph"
	"github.com/project-simone/simone/pkg/leaselock"
	"github.com/project-simone/simone/pkg/loader"
	lio "github.com/project-simone/simone/pkg/loader/io"
	ls3 "github.com/project-simone/simone/pkg/loader/s3"
	"github.com/project-simone/simone/pkg/logger"
)

// NewEngine wires loader, model client, cache and graph options from
// the environment and performs the initial load.
func NewEngine(ctx context.Context) (*engine.Engine, error) {
	l, err := NewLoader(ctx)
	if err != nil {
		return nil, err
	}

	client, err := NewAIClient()
	if err != nil {
		return nil, err
	}

	store, err := NewCache(ctx)
	if err != nil {
		return nil, err
	}

	var locker ai.Locker
	if rc, ok := store.(*cache.RedisCache); ok {
		locker = leaselock.New(rc.Client(), leaselock.Options{
			TTL:        util.GetEnvDuration("CACHE_LEASE_TTL", 2*time.Minute),
			Wait:       true,
			WaitJitter: 100 * time.Millisecond,
		})
	}

	return engine.New(ctx, engine.Params{
		Loader:        l,
		Parallel:      util.GetEnvInt("LOAD_PARALLEL", 8),
		GraphOptions:  GraphOptions(),
		AI:            client,
		Cache:         store,
		Locker:        locker,
		AnalysisModel: util.GetEnv("AI_ANALYSIS_MODEL"),
		QAModel:       util.GetEnv("AI_QA_MODEL"),
		ExportDir:     util.GetEnvString("EXPORT_DIR", "exports"),
	})
}

// NewLoader selects the episode source named by DATA_SOURCE.
func NewLoader(ctx context.Context) (loader.EpisodeFileLoader, error) {
	switch source := util.GetEnvString("DATA_SOURCE", "dir"); source {
	case "dir":
		dir := util.GetEnvString("ANALYSIS_DIR", "analysis_results")
		logger.Info("[Config] Loading episodes from directory", "dir", dir)
		return lio.NewDirLoader(dir), nil
	case "s3":
		bucket := util.GetEnv("AWS_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("DATA_SOURCE=s3 requires AWS_BUCKET")
		}
		logger.Info("[Config] Loading episodes from bucket", "bucket", bucket, "prefix", util.GetEnv("AWS_PREFIX"))
		l, err := ls3.NewS3EpisodeLoader(ctx, ls3.NewS3EpisodeLoaderParams{
			Bucket:    bucket,
			Prefix:    util.GetEnv("AWS_PREFIX"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			Region:    util.GetEnvString("AWS_REGION", "us-east-1"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey: util.GetEnv("AWS_SECRET_KEY"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 loader: %w", err)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", source)
	}
}

// NewAIClient creates the model client named by AI_ADAPTER. It
// returns nil for "none", leaving every feature on its local fallback.
func NewAIClient() (ai.CompletionClient, error) {
	switch adapter := util.GetEnvString("AI_ADAPTER", "openai"); adapter {
	case "none":
		logger.Warn("[Config] No model configured, using local fallbacks")
		return nil, nil
	case "ollama":
		client, err := oai.NewOllamaClient(oai.NewOllamaClientParams{
			Model:                 util.GetEnv("AI_ANALYSIS_MODEL"),
			BaseURL:               util.GetEnv("AI_CHAT_URL"),
			ApiKey:                util.GetEnv("AI_CHAT_KEY"),
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, nil
	case "openai":
		return gai.NewOpenAIClient(gai.NewOpenAIClientParams{
			Model:      util.GetEnv("AI_ANALYSIS_MODEL"),
			ChatURL:    util.GetEnv("AI_CHAT_URL"),
			ChatKey:    util.GetEnv("AI_CHAT_KEY"),
			MaxRetries: util.GetEnvInt("AI_MAX_RETRIES", 3),
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI_ADAPTER %q", adapter)
	}
}

// NewCache creates the response cache named by CACHE_BACKEND. A nil
// cache disables memoization.
func NewCache(ctx context.Context) (cache.Cache, error) {
	ttl := util.GetEnvDuration("CACHE_TTL", cache.DefaultTTL)

	switch backend := util.GetEnvString("CACHE_BACKEND", "file"); backend {
	case "none":
		return nil, nil
	case "file":
		fc, err := cache.NewFileCache(util.GetEnvString("CACHE_DIR", "cache"), ttl)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case "redis":
		rc := cache.NewRedisCache(cache.RedisOptions{
			Addr:     util.GetEnvString("REDIS_ADDR", "localhost:6379"),
			Password: util.GetEnv("REDIS_PASSWORD"),
			DB:       util.GetEnvInt("REDIS_DB", 0),
			TTL:      ttl,
		})
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}

// GraphOptions reads the duplicate and case policies for graph.Build.
func GraphOptions() []graph.BuildOption {
	return []graph.BuildOption{
		graph.WithDedupePerEpisode(util.GetEnvBool("GRAPH_DEDUPE", false)),
		graph.WithCaseFolding(util.GetEnvBool("GRAPH_FOLD_CASE", false)),
	}
}
