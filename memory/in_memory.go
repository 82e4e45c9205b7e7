// Package memory contains concrete LongTermStore implementations. The store
// interface and record types reside in the core package; depend on
// core.LongTermStore in your code and select an implementation (like the
// in-memory vector store below) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (vector databases, managed indexes, etc.) to be added without
// introducing dependency cycles.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
)

// Options configure the in-memory vector store.
type Options struct {
	// Dimension fixes the embedding dimensionality. Records and queries with
	// a different length are rejected with core.ErrDimensionMismatch. Zero
	// adopts the dimensionality of the first upserted record.
	Dimension int
	// Capacity bounds the number of records; zero means unbounded. When
	// full, the record with the lowest importance is evicted first, oldest
	// first among equal importance.
	Capacity int
}

// InMemoryStore is a process-local LongTermStore backed by a linear-scan
// cosine similarity index. Suitable for single-process deployments and
// tests; swap for a vector database behind the same interface for durable
// or large-scale retrieval.
//
// Concurrency: guarded by an RWMutex; upserts are atomic per record, so a
// failed upsert leaves the store unchanged for that id.
type InMemoryStore struct {
	mu        sync.RWMutex
	dimension int
	capacity  int
	records   map[string]core.MemoryRecord
}

var _ core.LongTermStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory long-term store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		dimension: opts.Dimension,
		capacity:  opts.Capacity,
		records:   make(map[string]core.MemoryRecord),
	}
}

// Upsert inserts or wholly replaces the record with the given id. The input
// is validated and deep-copied before any state changes, so failures leave
// the store untouched.
func (s *InMemoryStore) Upsert(ctx context.Context, record core.MemoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		return fmt.Errorf("%w: record id is empty", core.ErrMemoryWrite)
	}
	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: record %s has no embedding", core.ErrMemoryWrite, record.ID)
	}

	stored := record
	stored.Embedding = append([]float64(nil), record.Embedding...)
	if len(record.Metadata) > 0 {
		stored.Metadata = make(map[string]any, len(record.Metadata))
		for k, v := range record.Metadata {
			stored.Metadata[k] = v
		}
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		s.dimension = len(stored.Embedding)
	}
	if len(stored.Embedding) != s.dimension {
		return fmt.Errorf("%w: record %s has %d dimensions, store has %d",
			core.ErrDimensionMismatch, stored.ID, len(stored.Embedding), s.dimension)
	}

	_, replacing := s.records[stored.ID]
	if !replacing && s.capacity > 0 && len(s.records) >= s.capacity {
		s.evictLocked()
	}
	s.records[stored.ID] = stored
	return nil
}

// evictLocked removes the least retainable record: lowest importance first,
// oldest first among equal importance. Caller must hold the write lock.
func (s *InMemoryStore) evictLocked() {
	var victim string
	var vRec core.MemoryRecord
	first := true
	for id, rec := range s.records {
		if first ||
			rec.Importance < vRec.Importance ||
			(rec.Importance == vRec.Importance && rec.CreatedAt.Before(vRec.CreatedAt)) {
			victim, vRec = id, rec
			first = false
		}
	}
	if !first {
		delete(s.records, victim)
	}
}

// Search returns up to topK records ordered by descending cosine similarity
// to the query vector, restricted to the given categories (nil means all).
// Scores are normalized to [0,1].
func (s *InMemoryStore) Search(ctx context.Context, query []float64, categories []core.Category, topK int) ([]core.ScoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []core.ScoredRecord{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension != 0 && len(query) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, store has %d",
			core.ErrDimensionMismatch, len(query), s.dimension)
	}

	allowed := make(map[core.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	scored := make([]core.ScoredRecord, 0, len(s.records))
	for _, rec := range s.records {
		if len(allowed) > 0 && !allowed[rec.Category] {
			continue
		}
		score := embedding.NormalizeSimilarity(embedding.Cosine(query, rec.Embedding))
		scored = append(scored, core.ScoredRecord{MemoryRecord: rec, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID // deterministic order for equal scores
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// Stats reports record counts by category.
func (s *InMemoryStore) Stats(ctx context.Context) (core.MemoryStats, error) {
	if err := ctx.Err(); err != nil {
		return core.MemoryStats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := core.MemoryStats{ByCategory: make(map[core.Category]int)}
	for _, rec := range s.records {
		stats.Total++
		stats.ByCategory[rec.Category]++
	}
	return stats, nil
}

// Len reports the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
