package ai

import (
	"context"
	"errors"
	"math"
	"sync"
)

// ChatMessage represents a single message in a chat conversation.
//
// Role must be one of:
//   - "user"      → a user-provided message
//   - "assistant" → a message from the AI assistant
type ChatMessage struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   `json:"model"`          // Model identifier to use for generation
	SystemPrompts []string `json:"system_prompts"` // System prompts prepended to the request
	Temperature   float64  `json:"temperature"`    // Sampling temperature (0.0-2.0)
	MaxTokens     int      `json:"max_tokens"`     // Upper bound for generated tokens, 0 for the model default
	Thinking      string   `json:"thinking"`       // Reasoning effort for models that support it
}

// ModelMetrics contains performance metrics from AI model operations.
type ModelMetrics struct {
	Requests       int     `json:"requests"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values (e.g., 1.0) produce more random outputs, while lower values
// (e.g., 0.2) make outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens limits the length of the generated answer.
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// WithThinking returns a GenerateOption that enables extended thinking mode.
func WithThinking(thinking string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Thinking = thinking
	}
}

// ResolveOptions applies opts on top of defaults.
func ResolveOptions(defaults GenerateOptions, opts ...GenerateOption) GenerateOptions {
	for _, o := range opts {
		o(&defaults)
	}
	return defaults
}

// CompletionClient defines the AI operations the insight layer relies on.
// Implementations talk to a hosted or local chat model.
type CompletionClient interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error
	GenerateChat(
		ctx context.Context,
		messages []ChatMessage,
		opts ...GenerateOption,
	) (string, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}

// MetricsRecorder accumulates ModelMetrics across requests. The zero value
// is ready to use.
type MetricsRecorder struct {
	mu      sync.Mutex
	metrics ModelMetrics
}

// Add folds one request's usage into the totals.
func (r *MetricsRecorder) Add(m ModelMetrics) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.Requests++
	r.metrics.InputTokens += m.InputTokens
	r.metrics.OutputTokens += m.OutputTokens
	r.metrics.TotalTokens += m.TotalTokens
	r.metrics.DurationMs += m.DurationMs

	if r.metrics.DurationMs > 0 {
		tokensPerSecond := (float64(r.metrics.TotalTokens) * 1000.0) / float64(r.metrics.DurationMs)
		r.metrics.TokenPerSecond = float32(math.Round(tokensPerSecond*100) / 100)
	}
}

// Get returns the accumulated metrics since the last reset.
func (r *MetricsRecorder) Get() ModelMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

// Reset clears all accumulated metrics.
func (r *MetricsRecorder) Reset() {
	r.mu.Lock()
	r.metrics = ModelMetrics{}
	r.mu.Unlock()
}

// ErrUnavailable is returned by Unavailable for every request.
var ErrUnavailable = errors.New("no language model configured")

// Unavailable is a CompletionClient for deployments without a model. Callers
// fall back to their local answers.
type Unavailable struct{}

func (Unavailable) GenerateCompletion(context.Context, string, ...GenerateOption) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...GenerateOption) error {
	return ErrUnavailable
}

func (Unavailable) GenerateChat(context.Context, []ChatMessage, ...GenerateOption) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) ResetMetrics()            {}
func (Unavailable) GetMetrics() ModelMetrics { return ModelMetrics{} }
