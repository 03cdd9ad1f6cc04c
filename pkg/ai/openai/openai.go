package openai

import (
	"github.com/project-simone/simone/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient answers completion and chat requests through an OpenAI
// compatible chat completions endpoint.
//
// An OpenAIClient should be created using NewOpenAIClient.
type OpenAIClient struct {
	model   string
	chatURL string

	metrics ai.MetricsRecorder

	ChatClient *openai.Client
}

// NewOpenAIClientParams defines the configuration parameters for creating
// a new OpenAIClient.
//
// Model is used when a request does not name one through ai.WithModel.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL targets api.openai.com. MaxRetries overrides the SDK default when
// positive.
type NewOpenAIClientParams struct {
	Model      string
	ChatURL    string
	ChatKey    string
	MaxRetries int
}

// NewOpenAIClient creates and returns a new OpenAIClient.
//
// Example:
//
//	client := openai.NewOpenAIClient(openai.NewOpenAIClientParams{
//		Model:   "gpt-4o-mini",
//		ChatKey: os.Getenv("AI_CHAT_KEY"),
//	})
func NewOpenAIClient(params NewOpenAIClientParams) *OpenAIClient {
	return &OpenAIClient{
		model:      params.Model,
		chatURL:    params.ChatURL,
		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey, params.MaxRetries),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
	maxRetries int,
) *openai.Client {
	options := []option.RequestOption{}
	if apiKey != "" {
		options = append(options, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	if maxRetries > 0 {
		options = append(options, option.WithMaxRetries(maxRetries))
	}

	client := openai.NewClient(options...)

	return &client
}

// ResetMetrics clears the accumulated usage metrics.
func (c *OpenAIClient) ResetMetrics() {
	c.metrics.Reset()
}

// GetMetrics returns usage metrics since the last reset.
func (c *OpenAIClient) GetMetrics() ai.ModelMetrics {
	return c.metrics.Get()
}

var _ ai.CompletionClient = (*OpenAIClient)(nil)
