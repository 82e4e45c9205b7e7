package testutil

import (
	"time"

	"github.com/agentroute/agentroute/core"
)

// RecordBuilder helps construct memory records with fluent chaining for
// tests. Example:
//
//	rec := NewRecord("r1").Category(core.CategoryKnowledge).Vector(1, 0).Build()
type RecordBuilder struct {
	record core.MemoryRecord
}

// NewRecord creates a builder for a record with the given id and sensible
// defaults (knowledge category, importance 0.5, content derived from the id).
func NewRecord(id string) *RecordBuilder {
	return &RecordBuilder{record: core.MemoryRecord{
		ID:         id,
		Category:   core.CategoryKnowledge,
		Content:    "content-" + id,
		Importance: 0.5,
	}}
}

// Category sets the record category (chainable).
func (b *RecordBuilder) Category(c core.Category) *RecordBuilder {
	b.record.Category = c
	return b
}

// Content sets the record content (chainable).
func (b *RecordBuilder) Content(content string) *RecordBuilder {
	b.record.Content = content
	return b
}

// Importance sets the retention importance (chainable).
func (b *RecordBuilder) Importance(importance float64) *RecordBuilder {
	b.record.Importance = importance
	return b
}

// Vector sets the embedding vector (chainable).
func (b *RecordBuilder) Vector(vec ...float64) *RecordBuilder {
	b.record.Embedding = vec
	return b
}

// CreatedAgo back-dates the record by the given duration (chainable).
func (b *RecordBuilder) CreatedAgo(d time.Duration) *RecordBuilder {
	b.record.CreatedAt = time.Now().UTC().Add(-d)
	return b
}

// Metadata sets one metadata key/value pair (chainable).
func (b *RecordBuilder) Metadata(key string, val any) *RecordBuilder {
	if b.record.Metadata == nil {
		b.record.Metadata = map[string]any{}
	}
	b.record.Metadata[key] = val
	return b
}

// Build returns the accumulated record.
func (b *RecordBuilder) Build() core.MemoryRecord {
	return b.record
}
