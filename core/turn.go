package core

import "time"

// Conversation roles used in short-term memory turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is a single message in a session's conversation history. After
// creation it should be treated as immutable.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserTurn creates a user-authored turn stamped with the current UTC time.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant-authored turn stamped with the
// current UTC time.
func NewAssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content, Timestamp: time.Now().UTC()}
}

// ShortTermStore is the bounded, session-scoped conversation buffer. Turns
// for one session are never visible under another. Implementations evict the
// oldest turn (FIFO) once the configured bound is reached and must be safe
// for concurrent use.
//
// An unknown session id is not an error: Get returns an empty history and
// Append creates the session lazily.
type ShortTermStore interface {
	Append(sessionID string, turn Turn) error
	Get(sessionID string) ([]Turn, error)
	Clear(sessionID string) error
}
