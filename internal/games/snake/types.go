package snake

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Delta returns the unit vector of the direction. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Position is a cell on the board.
type Position struct {
	X, Y int
}

// NoFood marks the food slot as empty once the board is full.
var NoFood = Position{X: -1, Y: -1}

// Move returns the neighbouring cell in direction d.
func (p Position) Move(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the grid distance between two cells.
func (p Position) Manhattan(o Position) int {
	dx, dy := p.X-o.X, p.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// OutcomeKind classifies the result of a tick.
type OutcomeKind int

const (
	OutcomeMoved OutcomeKind = iota
	OutcomeAte
	OutcomeCollided
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// CollisionReason tells what the head ran into. Both reasons end the run the
// same way; the tag is for display only.
type CollisionReason int

const (
	CollisionNone CollisionReason = iota
	CollisionWall
	CollisionSelf
)

func (r CollisionReason) String() string {
	switch r {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "none"
	}
}

// Outcome is the result of a single Step.
type Outcome struct {
	Kind   OutcomeKind
	Reason CollisionReason // Set only when Kind is OutcomeCollided

	// SpeedChanged is set on OutcomeAte when the tick interval dropped.
	// The caller re-arms its timer so the new interval applies from the next tick.
	SpeedChanged bool

	// BoardFull is set on OutcomeAte when no free cell is left for new food.
	BoardFull bool
}

// Terminal reports whether the run cannot continue after this outcome.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeCollided || o.BoardFull
}

func (o Outcome) String() string {
	if o.Kind == OutcomeCollided {
		return "collided(" + o.Reason.String() + ")"
	}
	return o.Kind.String()
}
