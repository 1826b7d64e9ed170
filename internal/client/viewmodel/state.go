package viewmodel

// State is the lifecycle of one screen's collection.
//
//	idle -> loading -> ready        Mount
//	ready -> mutating -> ready      Delete
//	loading, mutating -> error      failure
//	error -> loading                Retry
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
