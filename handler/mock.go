package handler

import (
	"context"

	"github.com/agentroute/agentroute/core"
)

// MockHandler is a deterministic core.Handler for tests. It records the
// prompts and memory contexts it was dispatched with and returns either a
// canned result or a configured error.
type MockHandler struct {
	capability core.Capability
	result     *core.HandlerResult
	err        error

	// Calls records every Execute invocation in order.
	Calls []MockCall
}

// MockCall captures one Execute invocation.
type MockCall struct {
	Prompt string
	Memory core.MemoryContext
}

var _ core.Handler = (*MockHandler)(nil)

// NewMockHandler constructs a mock handler for the capability. Without
// further configuration it echoes the prompt.
func NewMockHandler(capability core.Capability) *MockHandler {
	return &MockHandler{capability: capability}
}

// Respond makes every Execute return the given text.
func (h *MockHandler) Respond(text string) *MockHandler {
	h.result = &core.HandlerResult{Text: text}
	return h
}

// FailWith makes every Execute return err (nil restores normal operation).
func (h *MockHandler) FailWith(err error) *MockHandler {
	h.err = err
	return h
}

// Capability implements core.Handler.
func (h *MockHandler) Capability() core.Capability { return h.capability }

// Execute implements core.Handler.
func (h *MockHandler) Execute(ctx context.Context, prompt string, mem core.MemoryContext) (*core.HandlerResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.Calls = append(h.Calls, MockCall{Prompt: prompt, Memory: mem})
	if h.err != nil {
		return nil, h.err
	}
	if h.result != nil {
		res := *h.result
		return &res, nil
	}
	return &core.HandlerResult{Text: string(h.capability) + ": " + prompt}, nil
}
