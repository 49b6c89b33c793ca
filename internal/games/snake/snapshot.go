package snake

// Snapshot captures the complete engine state for rendering, determinism
// testing and logging. Segments is a copy and safe to keep.
type Snapshot struct {
	Tick      uint64
	GridSize  int
	Score     int
	FoodEaten int
	Segments  []Position // Head first
	Dir       Direction
	Food      Position
	SpeedMs   int
	Over      bool
}

// Head returns the head position, or {-1,-1} for an empty snake.
func (s Snapshot) Head() Position {
	if len(s.Segments) == 0 {
		return Position{X: -1, Y: -1}
	}
	return s.Segments[0]
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Segments)
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:      e.tick,
		GridSize:  e.gridSize,
		Score:     e.score,
		FoodEaten: e.foodEaten,
		Segments:  e.Snake(),
		Dir:       e.direction,
		Food:      e.food,
		SpeedMs:   e.speedMs,
		Over:      e.done,
	}
}
