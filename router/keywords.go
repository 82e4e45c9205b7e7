package router

import (
	"strings"

	"github.com/agentroute/agentroute/internal/textutil"
)

// keywordScore returns the fraction of profile keywords present in the
// prompt, matched case- and diacritic-insensitively as substrings, capped at
// 1.0. The denominator saturates so that a handful of matched keywords from
// a large vocabulary still produces a meaningful signal.
func keywordScore(prompt string, keywords []string, saturation int) float64 {
	if len(keywords) == 0 {
		return 0
	}
	folded := textutil.Fold(prompt)
	matches := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, textutil.Fold(kw)) {
			matches++
		}
	}
	denom := len(keywords)
	if denom > saturation {
		denom = saturation
	}
	score := float64(matches) / float64(denom)
	if score > 1 {
		score = 1
	}
	return score
}
