package orchestrator

// State identifies a step of the request lifecycle. The progression is
// linear: ANALYZE -> ROUTE -> DISPATCH -> FORMAT -> DONE, with FAILED
// reachable from DISPATCH when the handler errors. There are no retry loops;
// a request traverses each state at most once.
type State int

const (
	// StateAnalyze loads session history and searches long-term memory.
	StateAnalyze State = iota
	// StateRoute runs the multi-signal classification.
	StateRoute
	// StateDispatch executes the selected handler.
	StateDispatch
	// StateFormat assembles the response and writes memory back.
	StateFormat
	// StateDone is the successful terminal state.
	StateDone
	// StateFailed is the terminal state entered when the handler fails.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateAnalyze:
		return "ANALYZE"
	case StateRoute:
		return "ROUTE"
	case StateDispatch:
		return "DISPATCH"
	case StateFormat:
		return "FORMAT"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state ends the request lifecycle.
func (s State) Terminal() bool { return s == StateDone || s == StateFailed }
