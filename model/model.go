// Package model defines the minimal LLM completion contract consumed by the
// context classifier and the LLM-backed handler, plus a deterministic mock.
// Provider adapters live in sub-packages (model/openai, model/anthropic) so
// callers depend only on the Model interface and select a vendor at wiring
// time.
package model

import (
	"context"
	"fmt"
)

// Request captures the normalized completion input.
type Request struct {
	Instructions string  `json:"instructions"`          // System-level instructions
	Prompt       string  `json:"prompt"`                // The user prompt
	Context      string  `json:"context,omitempty"`     // Optional pre-assembled context block
	Temperature  float64 `json:"temperature,omitempty"` // 0 means provider default
	MaxTokens    int64   `json:"max_tokens,omitempty"`  // 0 means provider default
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface required to drive a single completion call.
type Model interface {
	// Complete returns the model's text answer for the request.
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// returns canned completions keyed by prompt, with a deterministic default
// for unknown prompts.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

var _ Model = (*MockModel)(nil)

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every Complete call return err (nil restores normal
// operation).
func (m *MockModel) FailWith(err error) { m.err = err }

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	if resp, ok := m.responses[req.Prompt]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", req.Prompt), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
