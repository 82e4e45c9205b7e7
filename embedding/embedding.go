// Package embedding defines the text embedding contract used by the router
// and the long-term memory store, together with a deterministic in-process
// mock. Concrete provider adapters live alongside it (see openai.go); select
// an implementation at wiring time and depend only on the Embedder interface.
package embedding

import (
	"context"
	"math"
)

// Embedder turns text into a fixed-length numeric vector. Implementations
// are stateless pure functions of their input text plus the loaded model:
// for a fixed model version the same text yields the same vector (up to the
// model's own floating-point determinism). No side effects.
//
// On failure implementations return an error wrapping
// core.ErrEmbeddingUnavailable; callers treat this as recoverable and
// degrade scoring rather than aborting the request.
type Embedder interface {
	// Embed returns the embedding vector for text, of length Dimension().
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimension reports the fixed output dimensionality.
	Dimension() int
}

// Cosine returns the cosine similarity of two equal-length vectors in
// [-1,1]. A zero-norm operand yields 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeSimilarity maps a cosine similarity from [-1,1] to [0,1].
func NormalizeSimilarity(sim float64) float64 {
	n := (sim + 1) / 2
	return math.Min(1, math.Max(0, n))
}

// Centroid averages the given vectors component-wise. All vectors must share
// the same length; nil is returned for empty input.
func Centroid(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		for i := range out {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(vectors))
	}
	return out
}
