package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/model"
)

// Judgment is the structured outcome of the LLM context classification: the
// prompt's main purpose, subject domain and complexity. It is mapped to a
// per-agent affinity score by affinityScore.
type Judgment struct {
	Intent     string `json:"intent"`     // solve | research | process | help | learn | create
	Domain     string `json:"domain"`     // math | science | tech | business | health | education | general
	Complexity string `json:"complexity"` // simple | medium | complex
}

// ContextClassifier produces a Judgment for a prompt. Failures must be
// wrapped in core.ErrContextClassifierUnavailable; the router recovers by
// zeroing the context signal.
type ContextClassifier interface {
	Classify(ctx context.Context, prompt string) (Judgment, error)
}

const classifierInstructions = "You are a strict classifier. " +
	"Reply with a single JSON object and nothing else."

const classifierPromptFormat = `Analyze the request below and answer as JSON:
{
    "intent": "main purpose (solve/research/process/help/learn/create)",
    "domain": "subject area (math/science/tech/business/health/education/general)",
    "complexity": "difficulty (simple/medium/complex)"
}

Request: %q`

// LLMClassifier implements ContextClassifier with a single completion call.
type LLMClassifier struct {
	model model.Model
}

var _ ContextClassifier = (*LLMClassifier)(nil)

// NewLLMClassifier wraps a completion model as a context classifier.
func NewLLMClassifier(m model.Model) *LLMClassifier { return &LLMClassifier{model: m} }

// Classify implements ContextClassifier.
func (c *LLMClassifier) Classify(ctx context.Context, prompt string) (Judgment, error) {
	text, err := c.model.Complete(ctx, model.Request{
		Instructions: classifierInstructions,
		Prompt:       fmt.Sprintf(classifierPromptFormat, prompt),
		Temperature:  0.3,
		MaxTokens:    200,
	})
	if err != nil {
		return Judgment{}, fmt.Errorf("%w: %v", core.ErrContextClassifierUnavailable, err)
	}
	judgment, err := parseJudgment(text)
	if err != nil {
		return Judgment{}, fmt.Errorf("%w: %v", core.ErrContextClassifierUnavailable, err)
	}
	return judgment, nil
}

// parseJudgment extracts the first JSON object from the completion text.
// Models occasionally wrap the object in prose or code fences.
func parseJudgment(text string) (Judgment, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Judgment{}, fmt.Errorf("no JSON object in classifier output")
	}
	var j Judgment
	if err := json.Unmarshal([]byte(text[start:end+1]), &j); err != nil {
		return Judgment{}, fmt.Errorf("unparsable classifier output: %v", err)
	}
	return j, nil
}

// affinityScore maps a Judgment onto a capability-specific score in [0,1]
// using the tuned intent/domain/complexity bonus table.
func affinityScore(j Judgment, c core.Capability) float64 {
	var score float64

	switch c {
	case core.CapabilityMath:
		if j.Intent == "solve" || j.Intent == "calculate" {
			score += 0.3
		}
	case core.CapabilityResearch:
		if j.Intent == "research" || j.Intent == "learn" {
			score += 0.3
		}
	case core.CapabilityOCR:
		if j.Intent == "process" {
			score += 0.3
		}
	case core.CapabilityCode:
		if j.Intent == "solve" || j.Intent == "create" {
			score += 0.3
		}
	case core.CapabilityGeneral:
		if j.Intent == "help" || j.Intent == "learn" {
			score += 0.3
		}
	}

	switch c {
	case core.CapabilityMath:
		if j.Domain == "math" || j.Domain == "science" {
			score += 0.2
		}
	case core.CapabilityResearch:
		if j.Domain == "business" || j.Domain == "tech" || j.Domain == "science" {
			score += 0.2
		}
	case core.CapabilityCode:
		if j.Domain == "tech" {
			score += 0.2
		}
	case core.CapabilityGeneral:
		score += 0.1 // baseline so the catch-all is never scored zero
	}

	if j.Complexity == "complex" && (c == core.CapabilityMath || c == core.CapabilityCode) {
		score += 0.1
	}

	if score > 1 {
		score = 1
	}
	return score
}

// MockClassifier is a deterministic ContextClassifier for tests.
type MockClassifier struct {
	Judgment Judgment
	Err      error
}

var _ ContextClassifier = (*MockClassifier)(nil)

// Classify implements ContextClassifier.
func (m *MockClassifier) Classify(context.Context, string) (Judgment, error) {
	if m.Err != nil {
		return Judgment{}, m.Err
	}
	return m.Judgment, nil
}
