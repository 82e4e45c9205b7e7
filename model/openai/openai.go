// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts the normalized Request structure into the
// SDK's message format.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/agentroute/agentroute/model"
)

// Options configure the OpenAI model adapter. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model
// interface.
type Model struct {
	client *openai.Client
	opts   Options
}

var _ model.Model = (*Model)(nil)

// NewModel creates a new OpenAI model using the official client.
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Complete implements model.Model using a single non-streaming chat call.
func (m *Model) Complete(ctx context.Context, req model.Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	if req.Context != "" {
		messages = append(messages, openai.SystemMessage(req.Context))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    m.opts.Model,
		Messages: messages,
	}
	if temp := pick(req.Temperature, m.opts.Temperature); temp > 0 {
		params.Temperature = openai.Float(temp)
	}
	if maxTokens := pickInt(req.MaxTokens, m.opts.MaxCompletionTokens); maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(maxTokens)
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api error: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "openai"}
}

func pick(reqVal, optVal float64) float64 {
	if reqVal > 0 {
		return reqVal
	}
	return optVal
}

func pickInt(reqVal, optVal int64) int64 {
	if reqVal > 0 {
		return reqVal
	}
	return optVal
}
