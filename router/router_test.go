package router

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
	"github.com/agentroute/agentroute/profile"
)

func newTestRouter(t *testing.T, emb *embedding.MockEmbedder, judgment Judgment) *Router {
	t.Helper()
	reg, err := profile.NewRegistry(context.Background(), emb)
	require.NoError(t, err)
	r, err := New(reg, emb, func(o *Options) {
		o.Classifier = &MockClassifier{Judgment: judgment}
	})
	require.NoError(t, err)
	return r
}

func TestClassify_MathPrompt(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	decision, err := r.Classify(context.Background(), "Giải phương trình x^2 - 5x + 6 = 0")
	require.NoError(t, err)

	assert.Equal(t, core.CapabilityMath, decision.Selected)
	assert.False(t, decision.UsedFallback)
	assert.GreaterOrEqual(t, decision.Breakdown[core.CapabilityMath].Keyword, 0.2,
		"giải + phương trình should fire the keyword signal")
	assert.Greater(t, decision.Confidence, decision.Breakdown[core.CapabilityResearch].Combined)
}

func TestClassify_ResearchPrompt(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "research", Domain: "tech", Complexity: "medium"})

	decision, err := r.Classify(context.Background(), "Tin tức mới nhất về AI tuần này")
	require.NoError(t, err)
	assert.Equal(t, core.CapabilityResearch, decision.Selected)
}

func TestClassify_AmbiguousPromptScoresLow(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "unknown", Domain: "general", Complexity: "simple"})

	decision, err := r.Classify(context.Background(), "Hôm nay là ngày gì?")
	require.NoError(t, err)

	for capability, b := range decision.Breakdown {
		assert.Less(t, b.Combined, 0.6, "capability %s should score low", capability)
	}
	assert.Contains(t, decision.Reasoning, "low confidence")
	assert.False(t, decision.KeywordSignalFired())
}

func TestClassify_EmbeddingOutageDegrades(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})
	emb.Fail(true)

	decision, err := r.Classify(context.Background(), "Giải phương trình x^2 - 5x + 6 = 0")
	require.NoError(t, err, "router must still decide without embeddings")

	assert.True(t, decision.UsedFallback)
	assert.Equal(t, core.CapabilityMath, decision.Selected, "keyword + context signals should carry the decision")
	for _, b := range decision.Breakdown {
		assert.Zero(t, b.Semantic)
	}
	assert.Contains(t, decision.Reasoning, "semantic signal unavailable")
}

func TestClassify_ClassifierOutageDegrades(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	reg, err := profile.NewRegistry(context.Background(), emb)
	require.NoError(t, err)
	r, err := New(reg, emb, func(o *Options) {
		o.Classifier = &MockClassifier{Err: core.ErrContextClassifierUnavailable}
	})
	require.NoError(t, err)

	decision, err := r.Classify(context.Background(), "Giải phương trình x^2 - 5x + 6 = 0")
	require.NoError(t, err)
	for _, b := range decision.Breakdown {
		assert.Zero(t, b.Context)
	}
	assert.Contains(t, decision.Reasoning, "context analysis unavailable")
	assert.Equal(t, core.CapabilityMath, decision.Selected)
}

func TestClassify_Deterministic(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "solve", Domain: "math", Complexity: "complex"})

	first, err := r.Classify(context.Background(), "Tính đạo hàm của hàm f(x) = x^3")
	require.NoError(t, err)
	second, err := r.Classify(context.Background(), "Tính đạo hàm của hàm f(x) = x^3")
	require.NoError(t, err)

	assert.Equal(t, first.Selected, second.Selected)
	for capability, b := range first.Breakdown {
		assert.InDelta(t, b.Combined, second.Breakdown[capability].Combined, 1e-12)
	}
}

func TestClassify_ScoreInvariants(t *testing.T) {
	emb := embedding.NewMockEmbedder(64)
	r := newTestRouter(t, emb, Judgment{Intent: "research", Domain: "science", Complexity: "medium"})

	decision, err := r.Classify(context.Background(), "Nghiên cứu về biến đổi khí hậu")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, decision.Confidence, 0.0)
	assert.LessOrEqual(t, decision.Confidence, 1.0)
	for capability, b := range decision.Breakdown {
		for name, v := range map[string]float64{"semantic": b.Semantic, "keyword": b.Keyword, "context": b.Context} {
			assert.GreaterOrEqual(t, v, 0.0, "%s/%s", capability, name)
			assert.LessOrEqual(t, v, 1.0, "%s/%s", capability, name)
		}
		weighted := DefaultWeights.Semantic*b.Semantic + DefaultWeights.Keyword*b.Keyword + DefaultWeights.Context*b.Context
		assert.True(t, math.Abs(weighted-b.Combined) < 1e-9,
			"%s: weighted components %f != combined %f", capability, weighted, b.Combined)
	}
}

func TestClassify_TieBreaksByDeclarationOrder(t *testing.T) {
	reg, err := profile.NewRegistry(context.Background(), nil, func(o *profile.Options) {
		o.Profiles = []profile.Profile{
			{Capability: core.CapabilityOCR},
			{Capability: core.CapabilityCode},
		}
	})
	require.NoError(t, err)
	r, err := New(reg, nil)
	require.NoError(t, err)

	decision, err := r.Classify(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, core.CapabilityOCR, decision.Selected, "all-zero scores fall to the first declared profile")
	assert.True(t, decision.UsedFallback)
}

func TestNew_RequiresProfiles(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, core.ErrNoAgentsRegistered)
}

func TestNew_RejectsBadWeights(t *testing.T) {
	reg, err := profile.NewRegistry(context.Background(), nil)
	require.NoError(t, err)
	_, err = New(reg, nil, func(o *Options) {
		o.Weights = Weights{Semantic: 0.9, Keyword: 0.9, Context: 0.9}
	})
	assert.Error(t, err)
}

func TestClassify_Cancellation(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	r := newTestRouter(t, emb, Judgment{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Classify(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeywordScore(t *testing.T) {
	keywords := []string{"giải", "phương trình", "toán", "x^", "="}

	score := keywordScore("Giải phương trình x^2 - 5x + 6 = 0", keywords, 10)
	assert.InDelta(t, 0.8, score, 1e-9, "4 of 5 keywords present")

	assert.Zero(t, keywordScore("hello world", keywords, 10))
	assert.Zero(t, keywordScore("anything", nil, 10))

	// saturation caps the denominator for large vocabularies
	many := make([]string, 30)
	for i := range many {
		many[i] = "kw"
	}
	many[0] = "hello"
	assert.InDelta(t, 0.1, keywordScore("hello", many, 10), 1e-9)
}

func TestKeywordScore_DiacriticInsensitive(t *testing.T) {
	score := keywordScore("giai phuong trinh bac hai", []string{"giải", "phương trình"}, 10)
	assert.InDelta(t, 1.0, score, 1e-9)
}
