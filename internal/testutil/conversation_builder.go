package testutil

import (
	"github.com/agentroute/agentroute/core"
)

// ConversationBuilder helps construct turn histories with fluent chaining
// for tests. Example:
//
//	turns := NewConversation().User("hi").Assistant("hello").Build()
type ConversationBuilder struct {
	turns []core.Turn
}

// NewConversation creates an empty conversation builder. Use chainable
// methods (User, Assistant, Turn) then call Build.
func NewConversation() *ConversationBuilder {
	return &ConversationBuilder{}
}

// User appends a user-authored turn (chainable).
func (b *ConversationBuilder) User(content string) *ConversationBuilder {
	b.turns = append(b.turns, core.NewUserTurn(content))
	return b
}

// Assistant appends an assistant-authored turn (chainable).
func (b *ConversationBuilder) Assistant(content string) *ConversationBuilder {
	b.turns = append(b.turns, core.NewAssistantTurn(content))
	return b
}

// Turn appends an arbitrary pre-built turn (chainable).
func (b *ConversationBuilder) Turn(turn core.Turn) *ConversationBuilder {
	b.turns = append(b.turns, turn)
	return b
}

// Build returns the accumulated turns, oldest first.
func (b *ConversationBuilder) Build() []core.Turn {
	return append([]core.Turn(nil), b.turns...)
}
