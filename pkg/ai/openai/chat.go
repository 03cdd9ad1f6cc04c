package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/project-simone/simone/pkg/ai"
	"github.com/project-simone/simone/pkg/logger"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
//
// Example:
//
//	resp, err := client.GenerateCompletion(ctx, "Summarize this episode...")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp)
func (c *OpenAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.3,
	}, opts...)

	msgs := systemMessages(options)
	msgs = append(msgs, openai.UserMessage(prompt))

	return c.send(ctx, c.newParams(options, msgs))
}

// GenerateCompletionWithFormat sends a prompt to the chat model and
// unmarshals the response into out, using a JSON schema derived from out
// to enforce structure.
//
// Example:
//
//	var out struct{ Points []string `json:"points"` }
//	err := client.GenerateCompletionWithFormat(ctx, "points", "", "List...", &out)
func (c *OpenAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   name,
		Schema: ai.GenerateSchema(out),
		Strict: openai.Bool(true),
	}
	if description != "" {
		schemaParam.Description = openai.String(description)
	}

	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.1,
	}, opts...)

	msgs := systemMessages(options)
	msgs = append(msgs, openai.UserMessage(prompt))

	body := c.newParams(options, msgs)
	body.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: schemaParam,
		},
	}

	message, err := c.send(ctx, body)
	if err != nil {
		return err
	}
	if message == "" {
		return fmt.Errorf("empty response from model for %s", name)
	}
	return ai.UnmarshalFlexible(message, out)
}

// GenerateChat sends a multi-turn chat conversation to the model and
// returns the assistant's reply as plain text. Messages with a role other
// than "user" or "assistant" are ignored.
func (c *OpenAIClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ResolveOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.7,
	}, opts...)

	msgs := systemMessages(options)
	for _, message := range messages {
		switch message.Role {
		case "user":
			msgs = append(msgs, openai.UserMessage(message.Message))
		case "assistant":
			msgs = append(msgs, openai.AssistantMessage(message.Message))
		}
	}

	return c.send(ctx, c.newParams(options, msgs))
}

func systemMessages(options ai.GenerateOptions) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(options.SystemPrompts)+1)
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}
	return msgs
}

func (c *OpenAIClient) newParams(
	options ai.GenerateOptions,
	msgs []openai.ChatCompletionMessageParamUnion,
) openai.ChatCompletionNewParams {
	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		body.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}

	if options.Thinking != "" {
		// Needed fix for gpt-5 models as they dont support temperature other than 1.0 when reasoning is enabled
		if c.chatURL == "" {
			body.Temperature = openai.Float(1.0)
		}
		body.ReasoningEffort = shared.ReasoningEffort(options.Thinking)
	}
	return body
}

func (c *OpenAIClient) send(ctx context.Context, body openai.ChatCompletionNewParams) (string, error) {
	start := time.Now()
	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		return "", err
	}
	duration := time.Since(start).Milliseconds()

	c.metrics.Add(ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	})

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model %s", body.Model)
	}
	logger.Debug("[AI] Completion finished", "model", body.Model, "duration_ms", duration, "tokens", response.Usage.TotalTokens)
	return response.Choices[0].Message.Content, nil
}
