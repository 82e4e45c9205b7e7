// Package router implements the semantic router: it scores a request against
// every registered agent profile using three independent signals (semantic
// similarity, keyword overlap, LLM context classification), blends them into
// a combined score per agent, and emits a ranked RoutingDecision with a
// confidence value and a full per-agent breakdown.
//
// Signal outages are recovered locally: an embedding failure zeroes the
// semantic signal, a classifier failure zeroes the context signal, and the
// decision is flagged accordingly instead of failing the request. Only an
// empty profile registry is fatal.
package router

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
	"github.com/agentroute/agentroute/logging"
	"github.com/agentroute/agentroute/profile"
)

// Weights blend the three routing signals. They should sum to 1 so that the
// combined score stays in [0,1]; Validate enforces this.
type Weights struct {
	Semantic float64 `yaml:"semantic"`
	Keyword  float64 `yaml:"keyword"`
	Context  float64 `yaml:"context"`
}

// DefaultWeights is the blend the system was tuned with. No behavioral
// intent beyond "weighted blend" should be read into the exact values.
var DefaultWeights = Weights{Semantic: 0.4, Keyword: 0.3, Context: 0.3}

// Validate checks the weights are non-negative and sum to 1 within tolerance.
func (w Weights) Validate() error {
	if w.Semantic < 0 || w.Keyword < 0 || w.Context < 0 {
		return fmt.Errorf("router weights must be non-negative: %+v", w)
	}
	sum := w.Semantic + w.Keyword + w.Context
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("router weights must sum to 1, got %g", sum)
	}
	return nil
}

// Options configure a Router.
type Options struct {
	// Weights blends the three signals. Defaults to DefaultWeights.
	Weights Weights
	// ConfidenceThreshold is the combined score below which the decision's
	// reasoning flags low confidence. The winner is never silently replaced;
	// the orchestrator decides whether to apply a safe default.
	ConfidenceThreshold float64
	// KeywordSaturation is the matched-keyword count at which the keyword
	// score reaches 1.0 (capped by the profile's keyword count). Prompts are
	// short; expecting them to contain a profile's whole vocabulary would
	// flatten the signal.
	KeywordSaturation int
	// Classifier supplies the LLM context signal. Nil disables the signal
	// (context score 0 for all agents).
	Classifier ContextClassifier
	// Logger defaults to the NoOp logger.
	Logger logging.Logger
}

// Router scores prompts against the profile registry. Safe for concurrent
// use; all per-request state lives on the stack.
type Router struct {
	registry   *profile.Registry
	embedder   embedding.Embedder
	classifier ContextClassifier
	weights    Weights
	threshold  float64
	saturation int
	logger     logging.Logger
}

// New constructs a Router over the given registry and embedder.
func New(registry *profile.Registry, embedder embedding.Embedder, optFns ...func(o *Options)) (*Router, error) {
	opts := Options{
		Weights:             DefaultWeights,
		ConfidenceThreshold: 0.6,
		KeywordSaturation:   10,
		Logger:              logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if registry == nil || registry.Len() == 0 {
		return nil, core.ErrNoAgentsRegistered
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.KeywordSaturation <= 0 {
		opts.KeywordSaturation = 10
	}
	return &Router{
		registry:   registry,
		embedder:   embedder,
		classifier: opts.Classifier,
		weights:    opts.Weights,
		threshold:  opts.ConfidenceThreshold,
		saturation: opts.KeywordSaturation,
		logger:     opts.Logger,
	}, nil
}

// Classify produces exactly one RoutingDecision for the prompt. The decision
// is immutable once returned. Signal failures degrade scoring (see package
// doc); the only error returned is context cancellation.
func (r *Router) Classify(ctx context.Context, prompt string) (core.RoutingDecision, error) {
	var (
		promptVec []float64
		embErr    error
		judgment  Judgment
		ctxErr    error
	)

	// The two external signals are independent; fan them out.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if r.embedder == nil {
			embErr = core.ErrEmbeddingUnavailable
			return nil
		}
		promptVec, embErr = r.embedder.Embed(gctx, prompt)
		return nil
	})
	g.Go(func() error {
		if r.classifier == nil {
			ctxErr = core.ErrContextClassifierUnavailable
			return nil
		}
		judgment, ctxErr = r.classifier.Classify(gctx, prompt)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return core.RoutingDecision{}, err
	}

	if embErr != nil {
		r.logger.Warn("semantic signal unavailable", "error", embErr)
	}
	if ctxErr != nil {
		r.logger.Warn("context signal unavailable", "error", ctxErr)
	}

	semanticUsable := embErr == nil

	breakdown := make(map[core.Capability]core.ScoreBreakdown, r.registry.Len())
	var (
		winner     core.Capability
		winnerbest core.ScoreBreakdown
		first      = true
	)
	for _, p := range r.registry.Profiles() {
		var semantic float64
		if semanticUsable && p.Centroid != nil {
			semantic = embedding.NormalizeSimilarity(embedding.Cosine(promptVec, p.Centroid))
		}
		keyword := keywordScore(prompt, p.Keywords, r.saturation)
		var contextScore float64
		if ctxErr == nil {
			contextScore = affinityScore(judgment, p.Capability)
		}

		b := core.ScoreBreakdown{
			Semantic: semantic,
			Keyword:  keyword,
			Context:  contextScore,
			Combined: r.weights.Semantic*semantic + r.weights.Keyword*keyword + r.weights.Context*contextScore,
		}
		breakdown[p.Capability] = b

		// Strict greater-than keeps the earliest declared profile on ties.
		if first || b.Combined > winnerbest.Combined {
			winner, winnerbest = p.Capability, b
			first = false
		}
	}

	decision := core.RoutingDecision{
		Selected:     winner,
		Confidence:   winnerbest.Combined,
		Reasoning:    r.reasoning(winnerbest, embErr != nil, ctxErr != nil),
		Breakdown:    breakdown,
		UsedFallback: !semanticUsable,
	}

	r.logger.Debug("routing decision",
		"selected", decision.Selected,
		"confidence", decision.Confidence,
		"used_fallback", decision.UsedFallback,
	)
	return decision, nil
}

// reasoning composes the human-readable label the way the scoring thresholds
// were originally tuned: strong individual signals are called out, degraded
// signals and low confidence are noted.
func (r *Router) reasoning(b core.ScoreBreakdown, embeddingDown, classifierDown bool) string {
	var parts []string
	if b.Semantic > 0.7 {
		parts = append(parts, "high semantic similarity")
	}
	if b.Keyword > 0.3 {
		parts = append(parts, "strong keyword match")
	}
	if b.Context > 0.5 {
		parts = append(parts, "context affinity")
	}
	if len(parts) == 0 {
		parts = append(parts, "weighted multi-signal analysis")
	}
	if embeddingDown {
		parts = append(parts, "semantic signal unavailable")
	}
	if classifierDown {
		parts = append(parts, "context analysis unavailable")
	}
	if b.Combined < r.threshold {
		parts = append(parts, "low confidence")
	}
	return strings.Join(parts, "; ")
}

// ConfidenceThreshold reports the configured low-confidence threshold.
func (r *Router) ConfidenceThreshold() float64 { return r.threshold }
