package core

import (
	"context"
	"time"
)

// Category classifies a long-term memory record. Handlers write records under
// the category matching their capability; retrieval filters by the categories
// relevant to the dispatched handler.
type Category string

const (
	// CategoryMathSolution stores solved problems with their worked solutions.
	CategoryMathSolution Category = "math_solution"
	// CategoryResearch stores research findings with their sources.
	CategoryResearch Category = "research"
	// CategoryKnowledge stores general question/answer knowledge.
	CategoryKnowledge Category = "knowledge"
)

// Categories returns all known memory categories in declaration order.
func Categories() []Category {
	return []Category{CategoryMathSolution, CategoryResearch, CategoryKnowledge}
}

// MemoryRecord is a single unit of cross-session knowledge. Records are
// never mutated in place: an upsert with an existing id replaces the record
// wholesale, and superseding knowledge is written under a new id.
//
// The embedding dimensionality must match the embedding service that
// produced the query vectors used for search; stores reject mismatches.
type MemoryRecord struct {
	ID         string         `json:"id"`
	Embedding  []float64      `json:"embedding"`
	Category   Category       `json:"category"`
	Content    string         `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Importance float64        `json:"importance"` // In [0,1]; influences retention and ranking
	CreatedAt  time.Time      `json:"created_at"`
}

// ScoredRecord pairs a retrieved record with its similarity score in [0,1].
type ScoredRecord struct {
	MemoryRecord
	Score float64 `json:"score"`
}

// MemoryStats summarizes the long-term store contents.
type MemoryStats struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"by_category"`
}

// LongTermStore is the cross-session, vector-indexed knowledge store.
//
// Contract:
//   - Upsert is idempotent per id; a repeated upsert with identical payload
//     leaves search results unchanged, a different payload replaces the old
//     record entirely. A failed upsert leaves the store unchanged for that id.
//   - Search returns up to topK records ordered by descending cosine
//     similarity against the query vector, restricted to the given
//     categories (nil or empty means all categories).
//   - Concurrent reads and writes across sessions are supported without
//     cross-session locking; records are independent.
//   - Retention under capacity pressure is implementation-defined but must
//     never evict a higher-importance record before a lower-importance one
//     of equal age.
type LongTermStore interface {
	Upsert(ctx context.Context, record MemoryRecord) error
	Search(ctx context.Context, query []float64, categories []Category, topK int) ([]ScoredRecord, error)
	Stats(ctx context.Context) (MemoryStats, error)
}
