// Package agentroute provides a high-level façade over the routing and memory
// subsystems enabling rapid construction of intent-routed assistants. Most
// applications interact with this package by:
//  1. Creating an AgentRoute via New() (optionally overriding default
//     in-memory stores, profiles and signal providers)
//  2. Registering one or more handlers (LLM-backed or custom)
//  3. Handling requests per session (HandleRequest)
//
// The façade delegates the request lifecycle to orchestrator.Orchestrator
// while keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply a
// real embedder, a context-classification model, durable store
// implementations and a structured logger.
package agentroute

import (
	"context"
	"fmt"

	"github.com/agentroute/agentroute/config"
	"github.com/agentroute/agentroute/core"
	"github.com/agentroute/agentroute/embedding"
	"github.com/agentroute/agentroute/handler"
	"github.com/agentroute/agentroute/logging"
	"github.com/agentroute/agentroute/memory"
	"github.com/agentroute/agentroute/orchestrator"
	"github.com/agentroute/agentroute/profile"
	"github.com/agentroute/agentroute/router"
	"github.com/agentroute/agentroute/session"
)

// Options configures the AgentRoute instance.
type Options struct {
	// Handlers to register. Required; at least one handler must be present.
	Handlers []core.Handler

	// Profiles overrides the built-in agent profile set. The profile order
	// doubles as the routing tie-break order.
	Profiles []profile.Profile

	// Embedder powers the semantic routing signal and long-term retrieval.
	// Nil disables both; routing then runs on keywords and context alone.
	Embedder embedding.Embedder

	// Classifier provides the LLM context-classification signal. Nil
	// disables it.
	Classifier router.ContextClassifier

	// RouterWeights blends the three routing signals. Defaults to
	// router.DefaultWeights.
	RouterWeights router.Weights

	// ConfidenceThreshold marks decisions below it as low confidence.
	// Defaults to 0.6.
	ConfidenceThreshold float64

	// ConfidenceFloor triggers the general-handler substitution. Defaults
	// to 0.3.
	ConfidenceFloor float64

	// TopK bounds long-term retrieval per request. Defaults to 3.
	TopK int

	// Stores (default to in-memory implementations if not provided)
	ShortTerm core.ShortTermStore
	LongTerm  core.LongTermStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentRoute is the high-level façade aggregating the router, the handler
// registry and both memory tiers.
type AgentRoute struct {
	opts Options
	orch *orchestrator.Orchestrator
}

// New creates a new AgentRoute instance with optional overrides. Any unset
// store is initialized with an in-memory implementation.
func New(ctx context.Context, optFns ...func(o *Options)) (*AgentRoute, error) {
	opts := Options{
		RouterWeights:       router.DefaultWeights,
		ConfidenceThreshold: 0.6,
		ConfidenceFloor:     0.3,
		TopK:                3,
		ShortTerm:           session.NewInMemoryStore(),
		LongTerm:            memory.NewInMemoryStore(),
		Logger:              logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registryOpts := []func(o *profile.Options){}
	if opts.Profiles != nil {
		registryOpts = append(registryOpts, func(o *profile.Options) { o.Profiles = opts.Profiles })
	}
	profiles, err := profile.NewRegistry(ctx, opts.Embedder, registryOpts...)
	if err != nil {
		return nil, fmt.Errorf("agentroute: %w", err)
	}

	r, err := router.New(profiles, opts.Embedder, func(o *router.Options) {
		o.Weights = opts.RouterWeights
		o.ConfidenceThreshold = opts.ConfidenceThreshold
		o.Classifier = opts.Classifier
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, fmt.Errorf("agentroute: %w", err)
	}

	handlers, err := handler.NewRegistry(opts.Handlers...)
	if err != nil {
		return nil, fmt.Errorf("agentroute: %w", err)
	}

	orch, err := orchestrator.New(r, handlers, opts.ShortTerm, opts.LongTerm, opts.Embedder,
		func(o *orchestrator.Options) {
			o.ConfidenceFloor = opts.ConfidenceFloor
			o.TopK = opts.TopK
			o.Logger = opts.Logger
		})
	if err != nil {
		return nil, fmt.Errorf("agentroute: %w", err)
	}

	return &AgentRoute{opts: opts, orch: orch}, nil
}

// WithConfig returns an option applying a loaded configuration: routing
// weights and thresholds, memory bounds and the structured logger. Handlers
// and signal providers are code-level concerns and stay untouched; compose
// WithConfig with further option functions to set them.
func WithConfig(cfg *config.Config) func(o *Options) {
	return func(o *Options) {
		o.RouterWeights = router.Weights{
			Semantic: cfg.Router.SemanticWeight,
			Keyword:  cfg.Router.KeywordWeight,
			Context:  cfg.Router.ContextWeight,
		}
		o.ConfidenceThreshold = cfg.Router.ConfidenceThreshold
		o.ConfidenceFloor = cfg.Router.ConfidenceFloor
		o.TopK = cfg.Memory.TopK
		o.ShortTerm = session.NewInMemoryStore(func(so *session.Options) {
			so.MaxTurns = cfg.Memory.ShortTermMaxTurns
		})
		o.LongTerm = memory.NewInMemoryStore(func(mo *memory.Options) {
			mo.Capacity = cfg.Memory.LongTermCapacity
		})
		o.Logger = logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, cfg.Logging.AddSource)
	}
}

// HandleRequest routes and answers one user prompt within a session. An
// unknown session id starts a fresh conversation.
func (a *AgentRoute) HandleRequest(ctx context.Context, sessionID, prompt string) (*orchestrator.Response, error) {
	return a.orch.HandleRequest(ctx, sessionID, prompt)
}

// NewSession returns a fresh session identifier.
func (a *AgentRoute) NewSession() string { return core.NewID() }

// ClearSession drops a session's conversation history. Long-term memory is
// unaffected.
func (a *AgentRoute) ClearSession(sessionID string) error {
	return a.opts.ShortTerm.Clear(sessionID)
}

// MemoryStats reports long-term store record counts by category.
func (a *AgentRoute) MemoryStats(ctx context.Context) (core.MemoryStats, error) {
	return a.opts.LongTerm.Stats(ctx)
}
