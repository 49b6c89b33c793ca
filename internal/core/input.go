package core

// Action represents a semantic game action, abstracted from physical key presses.
// Input sources (keyboard, SSH sessions) translate raw events into these intents;
// the session controller never sees a key code.
type Action int

const (
	ActionNone        Action = iota
	ActionMoveUp             // W, Up arrow
	ActionMoveDown           // S, Down arrow
	ActionMoveLeft           // A, Left arrow
	ActionMoveRight          // D, Right arrow
	ActionTogglePause        // P, Space
	ActionStart              // Enter - start or restart a run
	ActionBack               // B, Escape - leave the game over screen
	ActionQuit               // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionTogglePause:
		return "TogglePause"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four directional intents.
func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}
