package core

import "fmt"

// Capability identifies a class of specialized handler a request can be
// routed to. The set is closed; routing scores are computed for every
// capability on every request.
type Capability string

const (
	// CapabilityMath handles equation solving and numeric analysis requests.
	CapabilityMath Capability = "math"
	// CapabilityResearch handles information lookup and news/trend requests.
	CapabilityResearch Capability = "research"
	// CapabilityOCR handles image/document text extraction requests.
	CapabilityOCR Capability = "ocr"
	// CapabilityCode handles programming and debugging requests.
	CapabilityCode Capability = "code"
	// CapabilityGeneral is the catch-all assistant capability. It doubles as
	// the deterministic safety fallback applied by the orchestrator when
	// routing confidence is very low.
	CapabilityGeneral Capability = "general"
)

// Capabilities returns all known capabilities in declaration order. The
// order is significant: the router breaks score ties by it, so it must be
// stable across processes.
func Capabilities() []Capability {
	return []Capability{
		CapabilityMath,
		CapabilityResearch,
		CapabilityOCR,
		CapabilityCode,
		CapabilityGeneral,
	}
}

// ParseCapability converts a string into a known Capability.
func ParseCapability(s string) (Capability, error) {
	for _, c := range Capabilities() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown capability %q", s)
}

// String implements fmt.Stringer.
func (c Capability) String() string { return string(c) }

// MemoryCategories maps a capability to the long-term memory categories
// considered relevant when assembling context for its handler. Capabilities
// without curated long-term knowledge fall back to the general knowledge
// category.
func (c Capability) MemoryCategories() []Category {
	switch c {
	case CapabilityMath:
		return []Category{CategoryMathSolution}
	case CapabilityResearch:
		return []Category{CategoryResearch}
	default:
		return []Category{CategoryKnowledge}
	}
}
