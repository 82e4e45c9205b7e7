package core

import "errors"

var (
	// ErrEmbeddingUnavailable signals that the embedding model could not be
	// loaded or invoked. Recoverable: the router degrades to keyword and
	// context scoring.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrContextClassifierUnavailable signals that the LLM context
	// classification call failed or returned unparsable output. Recoverable:
	// the context score defaults to zero for all capabilities.
	ErrContextClassifierUnavailable = errors.New("context classifier unavailable")

	// ErrNoAgentsRegistered is a fatal misconfiguration: routing was requested
	// but the profile registry is empty.
	ErrNoAgentsRegistered = errors.New("no agents registered")

	// ErrHandlerFailure wraps an error returned by a dispatched handler. The
	// orchestrator transitions to FAILED, preserving the partial trace, and
	// returns a user-visible error instead of crashing the process.
	ErrHandlerFailure = errors.New("handler execution failed")

	// ErrMemoryWrite signals a failed long-term write-back. Non-fatal on the
	// response path: logged, and the response is still returned.
	ErrMemoryWrite = errors.New("memory write failed")

	// ErrDimensionMismatch is returned by the long-term store when a record
	// or query vector does not match the store's embedding dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
