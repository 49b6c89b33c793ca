package session

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
