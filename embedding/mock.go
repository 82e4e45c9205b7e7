package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/internal/textutil"
)

// MockEmbedder is a deterministic in-process Embedder useful for tests and
// examples. It hashes diacritic-folded word tokens into a fixed number of
// buckets, so texts sharing vocabulary produce similar vectors while the
// same text always produces the identical vector. It is not a semantic
// model; it only preserves lexical overlap.
type MockEmbedder struct {
	dim  int
	fail bool
}

var _ Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder constructs a mock embedder with the given dimensionality.
func NewMockEmbedder(dim int) *MockEmbedder { return &MockEmbedder{dim: dim} }

// Fail toggles failure mode: every Embed call returns
// core.ErrEmbeddingUnavailable. Used to exercise the router's degraded path.
func (m *MockEmbedder) Fail(fail bool) { m.fail = fail }

// Embed implements Embedder.
func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if m.fail {
		return nil, core.ErrEmbeddingUnavailable
	}
	vec := make([]float64, m.dim)
	for _, tok := range textutil.Tokens(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[int(h.Sum32())%m.dim]++
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Dimension implements Embedder.
func (m *MockEmbedder) Dimension() int { return m.dim }
