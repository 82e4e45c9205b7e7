// Package profile houses the agent profile registry: the static table of
// known agent identities, each with a capability tag, curated keywords and
// exemplar phrases, and a precomputed exemplar embedding centroid. Profiles
// are immutable after load and live for the process lifetime; the router
// scores every request against all of them.
package profile

import (
	"context"
	"fmt"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
)

// Profile describes one routable agent identity.
type Profile struct {
	Capability  core.Capability
	Description string
	// Keywords matched case- and diacritic-insensitively against prompts.
	Keywords []string
	// Exemplars are typical requests for this agent; their embedding centroid
	// is the semantic anchor for similarity scoring.
	Exemplars []string
	// Centroid is the precomputed average of the exemplar embeddings. Nil
	// when no embedder was available at load time; the router then scores
	// the semantic signal as zero.
	Centroid []float64
}

// Options configure registry construction.
type Options struct {
	// Profiles overrides the built-in profile set.
	Profiles []Profile
}

// Registry owns the loaded profiles. Declaration order is preserved and
// significant: the router breaks combined-score ties by it.
type Registry struct {
	profiles []Profile
	byCap    map[core.Capability]int
	dim      int
}

// NewRegistry loads the profiles and precomputes exemplar centroids with the
// given embedder. A nil embedder (or one that fails) leaves centroids nil,
// which degrades semantic scoring instead of failing startup; the router
// reports used_fallback in that case. An empty profile set is the fatal
// misconfiguration core.ErrNoAgentsRegistered.
func NewRegistry(ctx context.Context, embedder embedding.Embedder, optFns ...func(o *Options)) (*Registry, error) {
	opts := Options{Profiles: BuiltinProfiles()}
	for _, fn := range optFns {
		fn(&opts)
	}
	if len(opts.Profiles) == 0 {
		return nil, core.ErrNoAgentsRegistered
	}

	r := &Registry{
		profiles: make([]Profile, len(opts.Profiles)),
		byCap:    make(map[core.Capability]int, len(opts.Profiles)),
	}
	copy(r.profiles, opts.Profiles)

	for i := range r.profiles {
		p := &r.profiles[i]
		if _, dup := r.byCap[p.Capability]; dup {
			return nil, fmt.Errorf("duplicate profile for capability %q", p.Capability)
		}
		r.byCap[p.Capability] = i

		if embedder == nil || p.Centroid != nil || len(p.Exemplars) == 0 {
			continue
		}
		vectors := make([][]float64, 0, len(p.Exemplars))
		for _, ex := range p.Exemplars {
			vec, err := embedder.Embed(ctx, ex)
			if err != nil {
				vectors = nil
				break
			}
			vectors = append(vectors, vec)
		}
		p.Centroid = embedding.Centroid(vectors)
	}
	if embedder != nil {
		r.dim = embedder.Dimension()
	}
	return r, nil
}

// Profiles returns the profiles in declaration order. The returned slice is
// shared; callers must not mutate it.
func (r *Registry) Profiles() []Profile { return r.profiles }

// Get returns the profile for a capability, if registered.
func (r *Registry) Get(c core.Capability) (Profile, bool) {
	i, ok := r.byCap[c]
	if !ok {
		return Profile{}, false
	}
	return r.profiles[i], true
}

// Len reports the number of registered profiles.
func (r *Registry) Len() int { return len(r.profiles) }

// Dimension reports the embedding dimensionality centroids were computed
// with (0 when loaded without an embedder).
func (r *Registry) Dimension() int { return r.dim }
