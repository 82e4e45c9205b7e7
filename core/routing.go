package core

// ScoreBreakdown records the three independent routing signals for one
// capability plus their weighted combination. All values are in [0,1].
// Created fresh per request and never persisted.
type ScoreBreakdown struct {
	Semantic float64 `json:"semantic_score"` // Cosine similarity vs exemplar centroid
	Keyword  float64 `json:"keyword_score"`  // Fraction of profile keywords present
	Context  float64 `json:"context_score"`  // LLM context-classification affinity
	Combined float64 `json:"combined_score"` // Weighted blend of the three
}

// RoutingDecision is the router's verdict for a single request. Exactly one
// decision is produced per request; it is immutable once returned and is
// attached to the execution trace.
type RoutingDecision struct {
	// Selected is the winning capability (highest combined score; ties broken
	// by capability declaration order).
	Selected Capability `json:"selected_agent"`
	// Confidence is the winner's combined score, in [0,1].
	Confidence float64 `json:"confidence"`
	// Reasoning is a short human-readable label explaining the choice.
	Reasoning string `json:"reasoning"`
	// Breakdown maps every capability to its per-signal scores.
	Breakdown map[Capability]ScoreBreakdown `json:"breakdown"`
	// UsedFallback is true when a degraded signal path or a safety override
	// influenced the decision (embedding outage, low-confidence substitution).
	UsedFallback bool `json:"used_fallback"`
}

// KeywordSignalFired reports whether any capability matched at least one
// profile keyword. The orchestrator consults this before substituting the
// general handler for very low confidence decisions.
func (d RoutingDecision) KeywordSignalFired() bool {
	for _, b := range d.Breakdown {
		if b.Keyword > 0 {
			return true
		}
	}
	return false
}
