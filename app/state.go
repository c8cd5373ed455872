package app

// State represents the current application state.
type State int

const (
	StateLoading State = iota // Waiting for the startup GET /settings
	StateError                // A load or apply failed; see Model.Err
	StateReady                // Settings loaded (possibly none)
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
