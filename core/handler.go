package core

import "context"

// Handler is the external collaborator interface implemented by specialized
// agents (math, research, ocr, code, general). AgentRoute does not define how
// a handler produces its answer; it only dispatches to one, enriched with
// memory context, and reports the outcome.
//
// Implementations must:
//   - Respect context cancellation
//   - Return either a non-nil result or an error, never both nil
//   - Treat the memory context as read-only
type Handler interface {
	// Capability reports which capability this handler serves.
	Capability() Capability

	// Execute answers the prompt using the supplied memory context.
	Execute(ctx context.Context, prompt string, mem MemoryContext) (*HandlerResult, error)
}

// HandlerResult is the outcome of a handler execution.
type HandlerResult struct {
	Text      string   `json:"text"`                // The user-visible answer
	Citations []string `json:"citations,omitempty"` // Optional source references
}

// MemoryContext bundles the short-term conversation window and the retrieved
// long-term records handed to a handler on dispatch.
type MemoryContext struct {
	Turns   []Turn         `json:"turns"`   // Recent conversation, oldest first
	Records []ScoredRecord `json:"records"` // Long-term hits, most similar first
}
