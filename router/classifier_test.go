package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/model"
)

func TestParseJudgment(t *testing.T) {
	j, err := parseJudgment(`{"intent":"solve","domain":"math","complexity":"complex"}`)
	require.NoError(t, err)
	assert.Equal(t, Judgment{Intent: "solve", Domain: "math", Complexity: "complex"}, j)

	// fenced / prose-wrapped output still parses
	j, err = parseJudgment("Sure, here you go:\n```json\n{\"intent\":\"help\",\"domain\":\"general\",\"complexity\":\"simple\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "help", j.Intent)

	_, err = parseJudgment("no json here")
	assert.Error(t, err)

	_, err = parseJudgment("{not valid json}")
	assert.Error(t, err)
}

func TestLLMClassifier(t *testing.T) {
	m := model.NewMockModel("classifier")
	c := NewLLMClassifier(m)

	// the mock keys on the full rendered prompt, so run with the default
	// response and assert only the error path behavior explicitly
	_, err := c.Classify(context.Background(), "Giải phương trình")
	assert.ErrorIs(t, err, core.ErrContextClassifierUnavailable,
		"non-JSON completion must surface as classifier unavailability")

	m.FailWith(errors.New("rate limited"))
	_, err = c.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, core.ErrContextClassifierUnavailable)
}

func TestAffinityScore(t *testing.T) {
	solveMath := Judgment{Intent: "solve", Domain: "math", Complexity: "complex"}
	assert.InDelta(t, 0.6, affinityScore(solveMath, core.CapabilityMath), 1e-9)
	assert.InDelta(t, 0.0, affinityScore(solveMath, core.CapabilityResearch), 1e-9)
	assert.InDelta(t, 0.4, affinityScore(solveMath, core.CapabilityCode), 1e-9) // solve intent + complex bonus
	assert.InDelta(t, 0.1, affinityScore(solveMath, core.CapabilityGeneral), 1e-9)

	research := Judgment{Intent: "research", Domain: "tech", Complexity: "medium"}
	assert.InDelta(t, 0.5, affinityScore(research, core.CapabilityResearch), 1e-9)
	assert.InDelta(t, 0.2, affinityScore(research, core.CapabilityCode), 1e-9)

	process := Judgment{Intent: "process", Domain: "general", Complexity: "simple"}
	assert.InDelta(t, 0.3, affinityScore(process, core.CapabilityOCR), 1e-9)

	for _, c := range core.Capabilities() {
		s := affinityScore(Judgment{Intent: "create", Domain: "tech", Complexity: "complex"}, c)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
