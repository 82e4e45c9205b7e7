package core

import "time"

// TraceEntry is one step description in the per-request execution trace.
type TraceEntry struct {
	Step      string    `json:"step_name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Trace is the ordered log of orchestration steps accumulated across a
// request. It is returned alongside the response so front ends can replay
// progress. Not safe for concurrent use; a trace belongs to one request.
type Trace []TraceEntry

// Add appends a step entry stamped with the current UTC time and returns the
// extended trace.
func (t Trace) Add(step, message string) Trace {
	return append(t, TraceEntry{Step: step, Message: message, Timestamp: time.Now().UTC()})
}

// Steps returns the ordered step names, useful for assertions and summaries.
func (t Trace) Steps() []string {
	steps := make([]string, len(t))
	for i, e := range t {
		steps[i] = e.Step
	}
	return steps
}
