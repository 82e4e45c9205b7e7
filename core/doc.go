// Package core provides the foundational domain types and interfaces used by
// AgentRoute. It defines the core abstractions for:
//
//   - Capabilities and Handlers (the specialized agents requests are routed to)
//   - Routing decisions with per-agent score breakdowns
//   - Conversation turns and the per-request execution trace
//   - Memory records plus pluggable short-term and long-term stores
//   - The error taxonomy shared across router, orchestrator and stores
//
// The package intentionally keeps implementation concerns (embedding models,
// LLM providers, concrete stores, orchestration) out of scope, exposing small
// interfaces to enable custom backends and extensions. All exported
// identifiers include concise documentation to aid discoverability and
// external consumption.
package core
