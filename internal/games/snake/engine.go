// Package snake implements the snake simulation engine: movement, collision
// detection, growth, scoring and difficulty-driven speed progression.
// The engine has no timer; callers advance it with Step at their own cadence.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	// PointsPerFood is the score gained for each food eaten.
	PointsPerFood = 10

	// InitialLength is the number of segments of a fresh snake.
	InitialLength = 3

	// startX is the head column of a fresh snake on a large enough board.
	startX = 5
)

// Engine owns the authoritative state of one run.
type Engine struct {
	gridSize int
	rng      *rand.Rand
	profile  config.DifficultyProfile

	snake      []Position // Head at index 0
	food       Position
	direction  Direction
	pending    Direction // Buffered direction for next step
	hasPending bool

	score     int
	foodEaten int
	speedMs   int
	tick      uint64

	// done is set once a terminal outcome was produced; Step then repeats it.
	done bool
	last Outcome
}

// NewEngine creates an engine for a square board of gridSize cells per side.
// Boards smaller than config.MinGridSize are enlarged to it.
// The seed drives food placement so runs are reproducible.
func NewEngine(gridSize int, seed int64) *Engine {
	return &Engine{
		gridSize: max(gridSize, config.MinGridSize),
		rng:      rand.New(rand.NewSource(seed)),
		food:     NoFood,
	}
}

// GridSize returns the number of cells per side.
func (e *Engine) GridSize() int {
	return e.gridSize
}

// Reset starts a new run with the given difficulty profile.
// The snake is horizontal, three segments long, heading right with its head
// at (5, gridSize/2); food is placed on a random free cell.
func (e *Engine) Reset(profile config.DifficultyProfile) Snapshot {
	e.profile = profile
	e.score = 0
	e.foodEaten = 0
	e.speedMs = profile.InitialSpeedMs
	e.tick = 0
	e.done = false
	e.last = Outcome{}

	headX := core.Clamp(startX, InitialLength-1, e.gridSize-1)
	headY := e.gridSize / 2
	e.snake = make([]Position, 0, InitialLength)
	for i := range InitialLength {
		e.snake = append(e.snake, Position{X: headX - i, Y: headY})
	}
	e.direction = DirRight
	e.pending = DirRight
	e.hasPending = false

	e.spawnFood()

	return e.Snapshot()
}

// SetPendingDirection buffers a direction for the next step.
// A request for the exact reverse of the committed direction is dropped and
// false is returned. Otherwise it replaces any earlier pending request.
func (e *Engine) SetPendingDirection(d Direction) bool {
	if !d.Valid() || d == e.direction.Opposite() {
		return false
	}
	e.pending = d
	e.hasPending = true
	return true
}

// PendingDirection returns the buffered direction, if any.
func (e *Engine) PendingDirection() (Direction, bool) {
	return e.pending, e.hasPending
}

// Step advances the run by one tick.
func (e *Engine) Step() Outcome {
	if e.done || len(e.snake) == 0 {
		return e.last
	}
	e.tick++

	// Apply buffered direction
	if e.hasPending {
		if e.pending != e.direction.Opposite() {
			e.direction = e.pending
		}
		e.hasPending = false
	}

	newHead := e.snake[0].Move(e.direction)

	if !e.InBounds(newHead) {
		return e.finish(Outcome{Kind: OutcomeCollided, Reason: CollisionWall})
	}

	// The tail has not moved yet, so it counts as occupied.
	if e.isSnakeAt(newHead) {
		return e.finish(Outcome{Kind: OutcomeCollided, Reason: CollisionSelf})
	}

	e.snake = append(e.snake, Position{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = newHead

	if newHead != e.food {
		e.snake = e.snake[:len(e.snake)-1]
		return Outcome{Kind: OutcomeMoved}
	}

	e.score += PointsPerFood
	e.foodEaten++
	out := Outcome{Kind: OutcomeAte}
	if !e.spawnFood() {
		out.BoardFull = true
	}
	out.SpeedChanged = e.accelerate()
	if out.BoardFull {
		return e.finish(out)
	}
	return out
}

func (e *Engine) finish(out Outcome) Outcome {
	e.done = true
	e.last = out
	return out
}

// accelerate applies the speed progression after a food is eaten.
func (e *Engine) accelerate() bool {
	if e.speedMs <= e.profile.MinSpeedMs {
		return false
	}
	old := e.speedMs
	e.speedMs = max(e.profile.MinSpeedMs, e.speedMs-e.profile.SpeedDecreasePerFood)
	return e.speedMs != old
}

// spawnFood places food at a uniformly random free cell.
// Returns false and clears the food slot when the snake fills the board.
func (e *Engine) spawnFood() bool {
	occupied := make([]bool, e.gridSize*e.gridSize)
	for _, seg := range e.snake {
		if e.InBounds(seg) {
			occupied[seg.Y*e.gridSize+seg.X] = true
		}
	}

	emptyCells := make([]Position, 0, max(0, len(occupied)-len(e.snake)))
	for y := range e.gridSize {
		for x := range e.gridSize {
			if !occupied[y*e.gridSize+x] {
				emptyCells = append(emptyCells, Position{X: x, Y: y})
			}
		}
	}

	if len(emptyCells) == 0 {
		e.food = NoFood
		return false
	}

	e.food = emptyCells[e.rng.Intn(len(emptyCells))]
	return true
}

// InBounds reports whether p lies on the board.
func (e *Engine) InBounds(p Position) bool {
	return p.X >= 0 && p.X < e.gridSize && p.Y >= 0 && p.Y < e.gridSize
}

func (e *Engine) isSnakeAt(p Position) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Snake returns a copy of the segments, head first.
func (e *Engine) Snake() []Position {
	out := make([]Position, len(e.snake))
	copy(out, e.snake)
	return out
}

// Length returns the number of segments.
func (e *Engine) Length() int {
	return len(e.snake)
}

// Food returns the food position, or NoFood when the board is full.
func (e *Engine) Food() Position {
	return e.food
}

// Direction returns the committed direction.
func (e *Engine) Direction() Direction {
	return e.direction
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// FoodEaten returns the number of food items eaten this run.
func (e *Engine) FoodEaten() int {
	return e.foodEaten
}

// SpeedMs returns the current tick interval in milliseconds.
func (e *Engine) SpeedMs() int {
	return e.speedMs
}

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration {
	return time.Duration(e.speedMs) * time.Millisecond
}

// Ticks returns the number of steps taken this run.
func (e *Engine) Ticks() uint64 {
	return e.tick
}

// Profile returns the difficulty profile of the current run.
func (e *Engine) Profile() config.DifficultyProfile {
	return e.profile
}
