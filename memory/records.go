package memory

import (
	"time"

	"github.com/agentroute/agentroute/core"
)

// Default importance per record kind, tuned alongside the retention policy:
// worked math solutions are the most valuable to recall verbatim, research
// findings age faster, generic Q&A knowledge fastest.
const (
	MathSolutionImportance = 0.8
	ResearchImportance     = 0.7
	KnowledgeImportance    = 0.6
)

// NewMathSolution builds a math_solution record from a solved problem.
func NewMathSolution(problem, solution string, vec []float64) core.MemoryRecord {
	return core.MemoryRecord{
		ID:         core.NewID(),
		Embedding:  vec,
		Category:   core.CategoryMathSolution,
		Content:    "Problem: " + problem + "\nSolution: " + solution,
		Metadata:   map[string]any{"problem": problem},
		Importance: MathSolutionImportance,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewResearchFinding builds a research record from a topic and its findings.
func NewResearchFinding(topic, findings string, sources []string, vec []float64) core.MemoryRecord {
	md := map[string]any{"topic": topic}
	if len(sources) > 0 {
		md["sources"] = sources
	}
	return core.MemoryRecord{
		ID:         core.NewID(),
		Embedding:  vec,
		Category:   core.CategoryResearch,
		Content:    "Topic: " + topic + "\nFindings: " + findings,
		Metadata:   md,
		Importance: ResearchImportance,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewKnowledge builds a general knowledge record from a question/answer pair.
func NewKnowledge(question, answer string, vec []float64) core.MemoryRecord {
	return core.MemoryRecord{
		ID:         core.NewID(),
		Embedding:  vec,
		Category:   core.CategoryKnowledge,
		Content:    "Q: " + question + "\nA: " + answer,
		Metadata:   map[string]any{"question": question},
		Importance: KnowledgeImportance,
		CreatedAt:  time.Now().UTC(),
	}
}

// RecordForResult builds the write-back record for a handler outcome under
// the capability's primary memory category.
func RecordForResult(capability core.Capability, prompt, resultText string, vec []float64) core.MemoryRecord {
	switch capability {
	case core.CapabilityMath:
		return NewMathSolution(prompt, resultText, vec)
	case core.CapabilityResearch:
		return NewResearchFinding(prompt, resultText, nil, vec)
	default:
		return NewKnowledge(prompt, resultText, vec)
	}
}
