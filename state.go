package wikisearch

// State is the lifecycle of a single search run.
//
//	READY -> EXPANDING -> {FOUND, TIMED_OUT, EXHAUSTED, NODE_NOT_FOUND, ABORTED}
type State int

const (
	StateReady State = iota
	StateExpanding
	StateFound
	StateTimedOut
	StateExhausted
	StateNodeNotFound
	// StateAborted ends runs stopped by a contract violation or by
	// cancellation of the caller's context.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateExpanding:
		return "expanding"
	case StateFound:
		return "found"
	case StateTimedOut:
		return "timed_out"
	case StateExhausted:
		return "exhausted"
	case StateNodeNotFound:
		return "node_not_found"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s >= StateFound
}
