package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
	"github.com/agentroute/agentroute/handler"
	"github.com/agentroute/agentroute/memory"
	"github.com/agentroute/agentroute/profile"
	"github.com/agentroute/agentroute/router"
	"github.com/agentroute/agentroute/session"
)

const mathPrompt = "Giải phương trình x^2 - 5x + 6 = 0"

type fixture struct {
	orch      *Orchestrator
	shortTerm *session.InMemoryStore
	longTerm  core.LongTermStore
	embedder  *embedding.MockEmbedder
	handlers  map[core.Capability]*handler.MockHandler
}

func newFixture(t *testing.T, judgment router.Judgment, opts ...func(f *fixture)) *fixture {
	t.Helper()
	f := &fixture{
		shortTerm: session.NewInMemoryStore(),
		embedder:  embedding.NewMockEmbedder(64),
		handlers:  make(map[core.Capability]*handler.MockHandler),
	}
	f.longTerm = memory.NewInMemoryStore()
	for _, opt := range opts {
		opt(f)
	}

	reg, err := profile.NewRegistry(context.Background(), f.embedder)
	require.NoError(t, err)
	r, err := router.New(reg, f.embedder, func(o *router.Options) {
		o.Classifier = &router.MockClassifier{Judgment: judgment}
	})
	require.NoError(t, err)

	var hs []core.Handler
	for _, c := range core.Capabilities() {
		mh := handler.NewMockHandler(c)
		f.handlers[c] = mh
		hs = append(hs, mh)
	}
	hreg, err := handler.NewRegistry(hs...)
	require.NoError(t, err)

	f.orch, err = New(r, hreg, f.shortTerm, f.longTerm, f.embedder)
	require.NoError(t, err)
	return f
}

func TestHandleRequest_MathFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	resp, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err)

	assert.Equal(t, StateDone, resp.State)
	assert.Equal(t, core.CapabilityMath, resp.Decision.Selected)
	assert.Equal(t, "math: "+mathPrompt, resp.ReplyText)
	assert.Len(t, f.handlers[core.CapabilityMath].Calls, 1)

	steps := resp.Trace.Steps()
	for _, want := range []string{"ANALYZE", "ROUTE", "DISPATCH", "FORMAT", "DONE"} {
		assert.Contains(t, steps, want)
	}

	// both turns recorded for the session
	turns, err := f.shortTerm.Get("s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, mathPrompt, turns[0].Content)
	assert.Equal(t, core.RoleAssistant, turns[1].Role)

	// exchange written back under the math_solution category
	stats, err := f.longTerm.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ByCategory[core.CategoryMathSolution])
}

func TestHandleRequest_RetrievedRecordsReachHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	vec, err := f.embedder.Embed(ctx, mathPrompt)
	require.NoError(t, err)
	require.NoError(t, f.longTerm.Upsert(ctx, memory.NewMathSolution(mathPrompt, "x = 2 hoặc x = 3", vec)))

	_, err = f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err)

	calls := f.handlers[core.CapabilityMath].Calls
	require.Len(t, calls, 1)
	require.NotEmpty(t, calls[0].Memory.Records, "seeded record should be retrieved for the handler")
	assert.Equal(t, core.CategoryMathSolution, calls[0].Memory.Records[0].Category)
	assert.Contains(t, calls[0].Memory.Records[0].Content, "x = 2 hoặc x = 3")
}

func TestHandleRequest_LowConfidenceFallsBackToGeneral(t *testing.T) {
	ctx := context.Background()
	// No keywords fire for this prompt and the embedder is down, so the only
	// signal left is a weak ocr context affinity. That lands below the floor.
	f := newFixture(t, router.Judgment{Intent: "process", Domain: "general", Complexity: "simple"})
	f.embedder.Fail(true)

	resp, err := f.orch.HandleRequest(ctx, "s1", "Ừm, để mình nghĩ xem")
	require.NoError(t, err)

	assert.Equal(t, core.CapabilityGeneral, resp.Decision.Selected)
	assert.True(t, resp.Decision.UsedFallback)
	assert.Contains(t, resp.Decision.Reasoning, "fallback to general")
	assert.Len(t, f.handlers[core.CapabilityGeneral].Calls, 1)
	assert.Empty(t, f.handlers[core.CapabilityOCR].Calls)
}

func TestHandleRequest_KeywordMatchBlocksFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})
	f.embedder.Fail(true)

	resp, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err)

	assert.Equal(t, core.CapabilityMath, resp.Decision.Selected,
		"a fired keyword signal keeps the specialist even at low confidence")
	assert.Len(t, f.handlers[core.CapabilityMath].Calls, 1)
	assert.Empty(t, f.handlers[core.CapabilityGeneral].Calls)
}

func TestHandleRequest_HandlerFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})
	f.handlers[core.CapabilityMath].FailWith(errors.New("tool crashed"))

	resp, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrHandlerFailure)

	require.NotNil(t, resp, "failed requests still surface the partial trace")
	assert.Equal(t, StateFailed, resp.State)
	assert.Contains(t, resp.Trace.Steps(), "FAILED")
	assert.Empty(t, resp.ReplyText)

	// the failed exchange is not recorded
	turns, _ := f.shortTerm.Get("s1")
	assert.Empty(t, turns)
	stats, _ := f.longTerm.Stats(ctx)
	assert.Zero(t, stats.Total)
}

type failingUpsertStore struct {
	core.LongTermStore
}

func (s *failingUpsertStore) Upsert(context.Context, core.MemoryRecord) error {
	return fmt.Errorf("%w: backend down", core.ErrMemoryWrite)
}

func TestHandleRequest_MemoryWriteFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"},
		func(f *fixture) {
			f.longTerm = &failingUpsertStore{LongTermStore: memory.NewInMemoryStore()}
		})

	resp, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err, "write-back failure must not fail the request")
	assert.Equal(t, StateDone, resp.State)
	assert.NotEmpty(t, resp.ReplyText)

	// the short-term record of the exchange is unaffected
	turns, _ := f.shortTerm.Get("s1")
	assert.Len(t, turns, 2)
}

func TestWriteBack_SkipsTrivialKnowledge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{})
	vec, err := f.embedder.Embed(ctx, "anything")
	require.NoError(t, err)
	var trace core.Trace

	f.orch.writeBack(ctx, "s1", core.CapabilityGeneral, "q", "ok", vec, &trace)
	stats, _ := f.longTerm.Stats(ctx)
	assert.Zero(t, stats.Total, "trivial general answers are not worth keeping")

	// math solutions are kept regardless of length
	f.orch.writeBack(ctx, "s1", core.CapabilityMath, "x=?", "x=1", vec, &trace)
	stats, _ = f.longTerm.Stats(ctx)
	assert.Equal(t, 1, stats.ByCategory[core.CategoryMathSolution])

	f.orch.writeBack(ctx, "s1", core.CapabilityGeneral, "q",
		"A substantial answer that explains the topic in enough detail to reuse.", vec, &trace)
	stats, _ = f.longTerm.Stats(ctx)
	assert.Equal(t, 1, stats.ByCategory[core.CategoryKnowledge])
}

func TestHandleRequest_EmbeddingOutageStillAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})
	f.embedder.Fail(true)

	resp, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err)

	assert.Equal(t, StateDone, resp.State)
	assert.True(t, resp.Decision.UsedFallback)
	require.Len(t, f.handlers[core.CapabilityMath].Calls, 1)
	assert.Empty(t, f.handlers[core.CapabilityMath].Calls[0].Memory.Records)

	// nothing written back without a prompt vector
	stats, _ := f.longTerm.Stats(ctx)
	assert.Zero(t, stats.Total)
}

func TestHandleRequest_SessionHistoryAccumulates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	_, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	require.NoError(t, err)
	_, err = f.orch.HandleRequest(ctx, "s1", "Còn x^2 - 9 = 0 thì sao?")
	require.NoError(t, err)

	calls := f.handlers[core.CapabilityMath].Calls
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Memory.Turns, "first request starts from an empty history")
	assert.Len(t, calls[1].Memory.Turns, 2, "second request sees the first exchange")
}

func TestHandleRequest_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	_, err := f.orch.HandleRequest(ctx, "alice", mathPrompt)
	require.NoError(t, err)
	_, err = f.orch.HandleRequest(ctx, "bob", "Tính tích phân của x^2")
	require.NoError(t, err)

	aliceTurns, _ := f.shortTerm.Get("alice")
	bobTurns, _ := f.shortTerm.Get("bob")
	require.Len(t, aliceTurns, 2)
	require.Len(t, bobTurns, 2)
	assert.Equal(t, mathPrompt, aliceTurns[0].Content)
	assert.NotEqual(t, aliceTurns[0].Content, bobTurns[0].Content)
}

func TestHandleRequest_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := fmt.Sprintf("s%d", i%4)
			if _, err := f.orch.HandleRequest(ctx, sid, mathPrompt); err != nil {
				t.Errorf("session %s: %v", sid, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		turns, err := f.shortTerm.Get(fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		assert.Len(t, turns, 4, "two serialized requests per session")
	}
}

func TestHandleRequest_Cancellation(t *testing.T) {
	f := newFixture(t, router.Judgment{Intent: "solve", Domain: "math", Complexity: "medium"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.HandleRequest(ctx, "s1", mathPrompt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	f := newFixture(t, router.Judgment{})

	_, err := New(nil, nil, f.shortTerm, f.longTerm, f.embedder)
	assert.Error(t, err)

	reg, err := profile.NewRegistry(context.Background(), f.embedder)
	require.NoError(t, err)
	r, err := router.New(reg, f.embedder)
	require.NoError(t, err)

	_, err = New(r, nil, f.shortTerm, f.longTerm, f.embedder)
	assert.ErrorIs(t, err, core.ErrNoAgentsRegistered)

	hreg, err := handler.NewRegistry(handler.NewMockHandler(core.CapabilityGeneral))
	require.NoError(t, err)
	_, err = New(r, hreg, f.shortTerm, f.longTerm, f.embedder, func(o *Options) {
		o.ConfidenceFloor = 1.5
	})
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "ANALYZE", StateAnalyze.String())
	assert.Equal(t, "DONE", StateDone.String())
	assert.Equal(t, "FAILED", StateFailed.String())
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateDispatch.Terminal())
}
