package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/logger"

	"github.com/ollama/ollama/api"
)

// defaultContext is the context window Ollama uses unless told otherwise.
const defaultContext = 4096

// GenerateCompletion sends a single-turn prompt and returns assistant text.
func (c *OllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.3,
	}, opts...)

	req := newRequest(options, []api.Message{{Role: "user", Content: prompt}})
	return c.send(ctx, req)
}

// GenerateCompletionWithFormat enforces a JSON schema and unmarshals into out.
func (c *OllamaClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	if out == nil {
		return errors.New("out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("out must be a non-nil pointer")
	}

	formatBytes, err := json.Marshal(ai.GenerateSchema(out))
	if err != nil {
		return err
	}

	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.1,
	}, opts...)

	if description != "" {
		prompt = description + "\n\n" + prompt
	}
	req := newRequest(options, []api.Message{{Role: "user", Content: prompt}})
	req.Format = json.RawMessage(formatBytes)

	content, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if content == "" {
		return fmt.Errorf("empty response from model for %s", name)
	}
	return ai.UnmarshalFlexible(content, out)
}

// GenerateChat runs a multi-turn chat and returns the assistant reply.
func (c *OllamaClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.7,
	}, opts...)

	msgs := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "user", "assistant":
			msgs = append(msgs, api.Message{Role: m.Role, Content: m.Message})
		}
	}

	return c.send(ctx, newRequest(options, msgs))
}

func newRequest(options ai.GenerateOptions, msgs []api.Message) *api.ChatRequest {
	all := make([]api.Message, 0, len(options.SystemPrompts)+len(msgs))
	for _, sp := range options.SystemPrompts {
		all = append(all, api.Message{Role: "system", Content: sp})
	}
	all = append(all, msgs...)

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: all,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}
	if options.Thinking != "" {
		req.Think = &api.ThinkValue{
			Value: options.Thinking,
		}
	}

	tokens := 200
	for _, m := range all {
		tokens += ai.CountTokens(m.Content)
	}
	if tokens > defaultContext {
		req.Options["num_ctx"] = tokens
	}
	return req
}

func (c *OllamaClient) send(ctx context.Context, req *api.ChatRequest) (string, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	}); err != nil {
		return "", err
	}

	durationMs := final.Metrics.TotalDuration.Milliseconds()
	c.metrics.Add(ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   durationMs,
	})
	logger.Debug("[AI] Ollama chat finished", "model", req.Model, "duration_ms", durationMs)

	return final.Message.Content, nil
}
