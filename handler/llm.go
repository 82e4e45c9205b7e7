package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/logging"
	"github.com/agentroute/agentroute/model"
)

// defaultInstructions maps each capability to the system instructions its
// LLM handler runs with. Kept deliberately short; specialized behavior comes
// from the memory context assembled per request.
var defaultInstructions = map[core.Capability]string{
	core.CapabilityMath: "You are a math assistant. Solve the problem step by step " +
		"and state the final answer clearly. Reuse prior worked solutions from the " +
		"provided context when they apply.",
	core.CapabilityResearch: "You are a research assistant. Summarize the most " +
		"relevant information for the request and cite sources when the context " +
		"provides them.",
	core.CapabilityOCR: "You are a document processing assistant. Extract and " +
		"structure text content from the described document or image.",
	core.CapabilityCode: "You are a programming assistant. Write correct, idiomatic " +
		"code and explain non-obvious parts briefly.",
	core.CapabilityGeneral: "You are a helpful general assistant. Answer directly " +
		"and concisely, using the conversation context when relevant.",
}

// LLMOptions configure an LLMHandler.
type LLMOptions struct {
	// Instructions override the default system instructions for the
	// capability.
	Instructions string
	// Temperature for completions; zero means provider default.
	Temperature float64
	// MaxTokens for completions; zero means provider default.
	MaxTokens int64
	// Logger for handler execution. Defaults to a no-op logger.
	Logger logging.Logger
}

// LLMHandler answers prompts for one capability through a model.Model,
// folding the short-term conversation window and retrieved long-term records
// into the completion context.
type LLMHandler struct {
	capability   core.Capability
	model        model.Model
	instructions string
	temperature  float64
	maxTokens    int64
	logger       logging.Logger
}

var _ core.Handler = (*LLMHandler)(nil)

// NewLLMHandler constructs an LLM-backed handler for the capability.
func NewLLMHandler(capability core.Capability, m model.Model, optFns ...func(o *LLMOptions)) *LLMHandler {
	opts := LLMOptions{
		Instructions: defaultInstructions[capability],
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &LLMHandler{
		capability:   capability,
		model:        m,
		instructions: opts.Instructions,
		temperature:  opts.Temperature,
		maxTokens:    opts.MaxTokens,
		logger:       opts.Logger,
	}
}

// Capability implements core.Handler.
func (h *LLMHandler) Capability() core.Capability { return h.capability }

// Execute implements core.Handler.
func (h *LLMHandler) Execute(ctx context.Context, prompt string, mem core.MemoryContext) (*core.HandlerResult, error) {
	text, err := h.model.Complete(ctx, model.Request{
		Instructions: h.instructions,
		Prompt:       prompt,
		Context:      FormatMemoryContext(mem),
		Temperature:  h.temperature,
		MaxTokens:    h.maxTokens,
	})
	if err != nil {
		h.logger.Error("Handler completion failed", "capability", h.capability, "error", err)
		return nil, fmt.Errorf("%w: %s handler: %v", core.ErrHandlerFailure, h.capability, err)
	}
	h.logger.Debug("Handler completion succeeded", "capability", h.capability, "chars", len(text))
	return &core.HandlerResult{Text: text}, nil
}

// FormatMemoryContext renders a MemoryContext as a plain-text block for
// inclusion in a completion request. Empty sections are omitted; an empty
// context renders as "".
func FormatMemoryContext(mem core.MemoryContext) string {
	var b strings.Builder
	if len(mem.Records) > 0 {
		b.WriteString("Relevant memory:\n")
		for _, r := range mem.Records {
			fmt.Fprintf(&b, "- [%s] %s\n", r.Category, r.Content)
		}
	}
	if len(mem.Turns) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Conversation so far:\n")
		for _, turn := range mem.Turns {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
	}
	return b.String()
}
