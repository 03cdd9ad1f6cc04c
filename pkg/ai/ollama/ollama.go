package ollama

import (
	"net/http"
	"net/url"

	"github.com/project-simone/simone/pkg/ai"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
	"golang.org/x/sync/semaphore"
)

// OllamaClient implements ai.CompletionClient against a locally hosted
// Ollama server. Concurrent requests are bounded by a weighted semaphore.
type OllamaClient struct {
	model string

	reqLock *semaphore.Weighted
	metrics ai.MetricsRecorder

	Client *api.Client
}

// NewOllamaClientParams contains configuration options for creating a new OllamaClient.
type NewOllamaClientParams struct {
	Model string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewOllamaClient creates a new Ollama-based AI client with the specified configuration.
// It connects to the Ollama server at the given BaseURL, falling back to
// OLLAMA_HOST and the local default when empty.
func NewOllamaClient(
	params NewOllamaClientParams,
) (*OllamaClient, error) {
	u, err := baseURL(params.BaseURL)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if params.ApiKey != "" {
		headers["Authorization"] = "Bearer " + params.ApiKey
	}
	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: headers,
			rt:      http.DefaultTransport,
		},
	}

	if params.MaxConcurrentRequests <= 0 {
		params.MaxConcurrentRequests = 4
	}

	return &OllamaClient{
		model:   params.Model,
		reqLock: semaphore.NewWeighted(params.MaxConcurrentRequests),
		Client:  api.NewClient(u, httpClient),
	}, nil
}

func baseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return envconfig.Host(), nil
	}
	return url.Parse(raw)
}

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *OllamaClient) ResetMetrics() {
	c.metrics.Reset()
}

// GetMetrics returns the accumulated token usage and timing metrics since the last reset.
func (c *OllamaClient) GetMetrics() ai.ModelMetrics {
	return c.metrics.Get()
}

var _ ai.CompletionClient = (*OllamaClient)(nil)
