// Package orchestrator implements the master request lifecycle: it analyzes
// the incoming prompt against both memory tiers, routes it through the
// multi-signal router, dispatches the selected handler and formats the
// response, accumulating a step trace along the way.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
	"github.com/agentroute/agentroute/handler"
	"github.com/agentroute/agentroute/logging"
	"github.com/agentroute/agentroute/memory"
	"github.com/agentroute/agentroute/router"
)

// Options configure the orchestrator.
type Options struct {
	// ConfidenceFloor is the hard floor below which the decision is replaced
	// by the general handler, provided no keyword signal fired. Defaults to
	// 0.3.
	ConfidenceFloor float64
	// TopK bounds the number of long-term records retrieved per request.
	// Defaults to 3.
	TopK int
	// Logger for orchestration steps. Defaults to a no-op logger.
	Logger logging.Logger
}

// Response is the outcome of one orchestrated request.
type Response struct {
	SessionID string               `json:"session_id"`
	ReplyText string               `json:"reply_text"`
	Decision  core.RoutingDecision `json:"decision"`
	Trace     core.Trace           `json:"trace"`
	State     State                `json:"-"`
}

// Orchestrator drives requests through the ANALYZE, ROUTE, DISPATCH and
// FORMAT states. Requests within one session are serialized so the
// conversation history they observe is consistent; requests across sessions
// run concurrently.
type Orchestrator struct {
	router    *router.Router
	handlers  *handler.Registry
	shortTerm core.ShortTermStore
	longTerm  core.LongTermStore
	embedder  embedding.Embedder
	floor     float64
	topK      int
	logger    logging.Logger

	locksMu      sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

// New constructs an orchestrator over the given router, handler registry and
// memory tiers. All collaborators are required except the embedder, which
// may be nil to disable long-term retrieval and write-back.
func New(r *router.Router, handlers *handler.Registry, shortTerm core.ShortTermStore, longTerm core.LongTermStore, embedder embedding.Embedder, optFns ...func(o *Options)) (*Orchestrator, error) {
	if r == nil {
		return nil, fmt.Errorf("orchestrator: router is required")
	}
	if handlers == nil || handlers.Len() == 0 {
		return nil, core.ErrNoAgentsRegistered
	}
	if shortTerm == nil {
		return nil, fmt.Errorf("orchestrator: short-term store is required")
	}
	if longTerm == nil {
		return nil, fmt.Errorf("orchestrator: long-term store is required")
	}
	opts := Options{
		ConfidenceFloor: 0.3,
		TopK:            3,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ConfidenceFloor < 0 || opts.ConfidenceFloor > 1 {
		return nil, fmt.Errorf("orchestrator: confidence floor %f out of [0,1]", opts.ConfidenceFloor)
	}
	return &Orchestrator{
		router:       r,
		handlers:     handlers,
		shortTerm:    shortTerm,
		longTerm:     longTerm,
		embedder:     embedder,
		floor:        opts.ConfidenceFloor,
		topK:         opts.TopK,
		logger:       opts.Logger,
		sessionLocks: make(map[string]*sync.Mutex),
	}, nil
}

// sessionLock returns the mutex serializing requests for one session,
// creating it on first use.
func (o *Orchestrator) sessionLock(sessionID string) *sync.Mutex {
	o.locksMu.Lock()
	defer o.locksMu.Unlock()
	mu, ok := o.sessionLocks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		o.sessionLocks[sessionID] = mu
	}
	return mu
}

// HandleRequest processes one user prompt for a session. An unknown session
// id starts a fresh conversation. On handler failure the returned response
// carries the partial trace in StateFailed alongside a non-nil error wrapping
// core.ErrHandlerFailure; every other degradation (embedding outage,
// classifier outage, memory write failure) is absorbed and traced.
func (o *Orchestrator) HandleRequest(ctx context.Context, sessionID, prompt string) (*Response, error) {
	mu := o.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	log := o.logger

	// ANALYZE: assemble the per-session view of both memory tiers.
	trace := core.Trace{}.Add(StateAnalyze.String(), "Loading session history and embedding prompt")
	turns, err := o.shortTerm.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var promptVec []float64
	if o.embedder != nil {
		promptVec, err = o.embedder.Embed(ctx, prompt)
		if err != nil {
			log.Warn("Prompt embedding failed, skipping long-term retrieval", "session_id", sessionID, "error", err)
			trace = trace.Add(StateAnalyze.String(), "Embedding unavailable, long-term memory skipped")
			promptVec = nil
		}
	}

	// ROUTE: multi-signal classification plus the low-confidence safety net.
	trace = trace.Add(StateRoute.String(), "Classifying request across registered capabilities")
	decision, err := o.router.Classify(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("route request: %w", err)
	}
	decision = o.applyConfidenceFloor(decision, &trace)
	log.Info("Request routed",
		"session_id", sessionID,
		"selected", decision.Selected,
		"confidence", decision.Confidence,
		"used_fallback", decision.UsedFallback,
	)
	trace = trace.Add(StateRoute.String(), fmt.Sprintf("Selected %s (confidence %.2f): %s",
		decision.Selected, decision.Confidence, decision.Reasoning))

	// DISPATCH: retrieve capability-relevant records and run the handler.
	mem := core.MemoryContext{Turns: turns}
	if promptVec != nil {
		records, err := o.longTerm.Search(ctx, promptVec, decision.Selected.MemoryCategories(), o.topK)
		if err != nil {
			log.Warn("Long-term search failed, continuing without records", "session_id", sessionID, "error", err)
			trace = trace.Add(StateDispatch.String(), "Long-term retrieval failed, continuing without records")
		} else {
			mem.Records = records
			trace = trace.Add(StateDispatch.String(), fmt.Sprintf("Retrieved %d long-term records", len(records)))
		}
	}

	h, err := o.handlers.Resolve(decision.Selected)
	if err != nil {
		return o.failed(sessionID, decision, trace, err)
	}
	trace = trace.Add(StateDispatch.String(), fmt.Sprintf("Dispatching to %s handler", decision.Selected))
	result, err := h.Execute(ctx, prompt, mem)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, core.ErrHandlerFailure) {
			err = fmt.Errorf("%w: %v", core.ErrHandlerFailure, err)
		}
		return o.failed(sessionID, decision, trace, err)
	}

	// FORMAT: record the exchange in both tiers and assemble the response.
	trace = trace.Add(StateFormat.String(), "Recording exchange and formatting response")
	if err := o.shortTerm.Append(sessionID, core.NewUserTurn(prompt)); err != nil {
		log.Warn("Short-term append failed", "session_id", sessionID, "error", err)
	}
	if err := o.shortTerm.Append(sessionID, core.NewAssistantTurn(result.Text)); err != nil {
		log.Warn("Short-term append failed", "session_id", sessionID, "error", err)
	}
	o.writeBack(ctx, sessionID, decision.Selected, prompt, result.Text, promptVec, &trace)

	trace = trace.Add(StateDone.String(), "Request completed")
	return &Response{
		SessionID: sessionID,
		ReplyText: result.Text,
		Decision:  decision,
		Trace:     trace,
		State:     StateDone,
	}, nil
}

// applyConfidenceFloor substitutes the general handler when confidence falls
// below the hard floor and no keyword signal fired for any capability. The
// substitution is recorded on the decision and in the trace.
func (o *Orchestrator) applyConfidenceFloor(decision core.RoutingDecision, trace *core.Trace) core.RoutingDecision {
	if decision.Confidence >= o.floor || decision.KeywordSignalFired() {
		return decision
	}
	if decision.Selected == core.CapabilityGeneral || !o.handlers.Has(core.CapabilityGeneral) {
		return decision
	}
	*trace = trace.Add(StateRoute.String(), fmt.Sprintf(
		"Confidence %.2f below floor %.2f with no keyword match, substituting general handler",
		decision.Confidence, o.floor))
	decision.Selected = core.CapabilityGeneral
	decision.UsedFallback = true
	decision.Reasoning = decision.Reasoning + "; low-confidence fallback to general"
	return decision
}

// minKnowledgeAnswerLen filters trivial answers out of the knowledge
// category; math solutions and research findings are always kept.
const minKnowledgeAnswerLen = 40

// writeBack persists the exchange as a long-term record. Failures are logged
// and traced but never fail the request.
func (o *Orchestrator) writeBack(ctx context.Context, sessionID string, capability core.Capability, prompt, answer string, promptVec []float64, trace *core.Trace) {
	if o.embedder == nil || promptVec == nil {
		return
	}
	if capability != core.CapabilityMath && capability != core.CapabilityResearch &&
		len(answer) < minKnowledgeAnswerLen {
		return
	}
	record := memory.RecordForResult(capability, prompt, answer, promptVec)
	if err := o.longTerm.Upsert(ctx, record); err != nil {
		o.logger.Warn("Long-term write-back failed", "session_id", sessionID, "error", err)
		*trace = trace.Add(StateFormat.String(), "Long-term write-back failed, response unaffected")
		return
	}
	*trace = trace.Add(StateFormat.String(), fmt.Sprintf("Stored %s record", record.Category))
}

// failed finalizes a request in the FAILED state, keeping the partial trace.
func (o *Orchestrator) failed(sessionID string, decision core.RoutingDecision, trace core.Trace, err error) (*Response, error) {
	o.logger.Error("Request failed", "session_id", sessionID, "selected", decision.Selected, "error", err)
	trace = trace.Add(StateFailed.String(), err.Error())
	return &Response{
		SessionID: sessionID,
		Decision:  decision,
		Trace:     trace,
		State:     StateFailed,
	}, err
}

// ConfidenceFloor reports the configured hard floor.
func (o *Orchestrator) ConfidenceFloor() float64 { return o.floor }
