// Package session implements the session controller: the small state machine
// that starts, pauses and ends runs of the snake engine, owns the tick
// driver's cadence and keeps the high-score table.
//
// Idle -> Running -> {Paused <-> Running} -> GameOver -> Idle
//
// A controller is not safe for concurrent use. Front ends serialise input
// events and ticks onto one goroutine (the Bubble Tea update loop does this).
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Engine is the part of the simulation engine the controller drives.
// *snake.Engine implements it.
type Engine interface {
	Reset(profile config.DifficultyProfile) snake.Snapshot
	SetPendingDirection(d snake.Direction) bool
	Step() snake.Outcome
	Score() int
	Length() int
	Ticks() uint64
	Interval() time.Duration
	Snapshot() snake.Snapshot
}

// Scheduler is the re-armable tick driver. Arm replaces any running timer,
// so at most one is ever active; each firing must result in one Tick call.
type Scheduler interface {
	Arm(interval time.Duration)
	Disarm()
}

type nopScheduler struct{}

func (nopScheduler) Arm(time.Duration) {}
func (nopScheduler) Disarm()           {}

// Controller runs snake sessions.
type Controller struct {
	engine     Engine
	settings   config.DifficultySettings
	difficulty config.Difficulty
	state      State

	store      ScoreStore
	scheduler  Scheduler
	observer   Observer
	logger     *log.Logger
	now        func() time.Time
	highScores HighScoreTable

	// Current run bookkeeping
	runID      string
	runStart   time.Time
	pausedAt   time.Time
	pausedFor  time.Duration
	lastResult *RunResult
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore sets the high-score store. Without one, records live in memory only.
func WithStore(s ScoreStore) Option {
	return func(c *Controller) { c.store = s }
}

// WithScheduler sets the tick driver.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithObserver sets the receiver of display side effects.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDifficulty selects the initial difficulty instead of the configured default.
func WithDifficulty(d config.Difficulty) Option {
	return func(c *Controller) { c.difficulty = d }
}

// WithClock overrides the time source used for run durations.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates an idle controller and loads the high-score table from the store.
func New(engine Engine, settings config.DifficultySettings, opts ...Option) *Controller {
	c := &Controller{
		engine:     engine,
		settings:   settings,
		difficulty: settings.Default,
		state:      StateIdle,
		scheduler:  nopScheduler{},
		observer:   NopObserver{},
		logger:     log.New(io.Discard),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, ok := c.settings.Profiles[c.difficulty]; !ok {
		c.difficulty = config.DifficultyEasy
	}

	c.highScores = c.loadHighScores()
	return c
}

func (c *Controller) loadHighScores() HighScoreTable {
	if c.store == nil {
		return NewHighScoreTable()
	}
	table, err := c.store.LoadHighScores()
	if err != nil {
		c.logger.Warn("could not load high scores, starting from zero", "error", err)
		return NewHighScoreTable()
	}
	return table.Normalize()
}

// refreshHighScores merges the stored table into the in-memory one, keeping
// the higher score per difficulty. Records set by other sessions sharing the
// store show up at the next run; a failed load keeps the current table.
func (c *Controller) refreshHighScores() {
	if c.store == nil {
		return
	}
	table, err := c.store.LoadHighScores()
	if err != nil {
		c.logger.Warn("could not reload high scores", "error", err)
		return
	}
	for d, score := range table.Normalize() {
		if score > c.highScores[d] {
			c.highScores[d] = score
			c.observer.HighScoreChanged(d, score)
		}
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Difficulty returns the selected difficulty.
func (c *Controller) Difficulty() config.Difficulty {
	return c.difficulty
}

// Profile returns the profile of the selected difficulty.
func (c *Controller) Profile() config.DifficultyProfile {
	return c.settings.Profiles[c.difficulty]
}

// HighScore returns the record for the selected difficulty.
func (c *Controller) HighScore() int {
	return c.highScores[c.difficulty]
}

// HighScores returns a copy of the whole table.
func (c *Controller) HighScores() HighScoreTable {
	return c.highScores.Clone()
}

// Score returns the score of the current or last run.
func (c *Controller) Score() int {
	return c.engine.Score()
}

// Snapshot returns the engine state for rendering.
func (c *Controller) Snapshot() snake.Snapshot {
	return c.engine.Snapshot()
}

// LastRun returns the result of the most recent finished run.
func (c *Controller) LastRun() (RunResult, bool) {
	if c.lastResult == nil {
		return RunResult{}, false
	}
	return *c.lastResult, true
}

// SelectDifficulty changes the difficulty. Only allowed while idle.
func (c *Controller) SelectDifficulty(d config.Difficulty) bool {
	if c.state != StateIdle {
		return false
	}
	if _, ok := c.settings.Profiles[d]; !ok {
		return false
	}
	c.difficulty = d
	c.logger.Debug("difficulty selected", "difficulty", d)
	return true
}

// Start begins a fresh run from Idle or GameOver. The high-score table is
// reloaded from the store first.
func (c *Controller) Start() bool {
	if c.state != StateIdle && c.state != StateGameOver {
		return false
	}

	c.refreshHighScores()

	snap := c.engine.Reset(c.Profile())
	c.runID = uuid.NewString()
	c.runStart = c.now()
	c.pausedFor = 0
	c.lastResult = nil

	c.setState(StateRunning)
	c.scheduler.Arm(c.engine.Interval())

	c.logger.Info("run started", "run", c.runID, "difficulty", c.difficulty, "interval", c.engine.Interval())
	c.observer.ScoreChanged(0)
	c.observer.Frame(snap)
	return true
}

// Move requests a direction change for the next tick. Ignored unless running.
// Returns whether the engine buffered the request.
func (c *Controller) Move(d snake.Direction) bool {
	if c.state != StateRunning {
		return false
	}
	return c.engine.SetPendingDirection(d)
}

// Pause freezes a running game.
func (c *Controller) Pause() bool {
	if c.state != StateRunning {
		return false
	}
	c.scheduler.Disarm()
	c.pausedAt = c.now()
	c.setState(StatePaused)
	return true
}

// Resume continues a paused game at the current speed.
func (c *Controller) Resume() bool {
	if c.state != StatePaused {
		return false
	}
	c.pausedFor += c.now().Sub(c.pausedAt)
	c.setState(StateRunning)
	c.scheduler.Arm(c.engine.Interval())
	return true
}

// TogglePause pauses a running game or resumes a paused one.
// A no-op in Idle and GameOver.
func (c *Controller) TogglePause() bool {
	switch c.state {
	case StateRunning:
		return c.Pause()
	case StatePaused:
		return c.Resume()
	default:
		return false
	}
}

// Dismiss returns from GameOver to Idle so a new difficulty can be chosen.
func (c *Controller) Dismiss() bool {
	if c.state != StateGameOver {
		return false
	}
	c.setState(StateIdle)
	return true
}

// Tick advances the engine by one step. The scheduler calls it on every
// firing; it is a no-op unless running.
func (c *Controller) Tick() (snake.Outcome, bool) {
	if c.state != StateRunning {
		return snake.Outcome{}, false
	}

	out := c.engine.Step()

	if out.Kind == snake.OutcomeAte {
		c.observer.ScoreChanged(c.engine.Score())
		if out.SpeedChanged && !out.Terminal() {
			// New cadence applies from the next tick
			c.scheduler.Arm(c.engine.Interval())
			c.logger.Debug("speed up", "run", c.runID, "interval", c.engine.Interval())
		}
	}

	c.observer.Frame(c.engine.Snapshot())

	if out.Terminal() {
		c.endRun(out)
	}
	return out, true
}

// endRun moves to GameOver and settles the high-score table.
func (c *Controller) endRun(out snake.Outcome) {
	c.scheduler.Disarm()

	score := c.engine.Score()
	result := RunResult{
		RunID:      c.runID,
		Difficulty: c.difficulty,
		Score:      score,
		Length:     c.engine.Length(),
		Reason:     out.Reason,
		Won:        out.BoardFull,
		Ticks:      c.engine.Ticks(),
		Duration:   c.now().Sub(c.runStart) - c.pausedFor,
		EndedAt:    c.now(),
	}

	if score > c.highScores[c.difficulty] {
		c.highScores[c.difficulty] = score
		result.NewHighScore = true
		if c.store != nil {
			if err := c.store.SaveHighScores(c.highScores.Clone()); err != nil {
				c.logger.Warn("could not save high scores", "error", err)
			}
		}
		c.observer.HighScoreChanged(c.difficulty, score)
	}

	if rec, ok := c.store.(RunRecorder); ok {
		if err := rec.RecordRun(result); err != nil {
			c.logger.Warn("could not record run", "run", c.runID, "error", err)
		}
	}

	c.lastResult = &result
	c.logger.Info("run ended",
		"run", c.runID,
		"difficulty", c.difficulty,
		"score", score,
		"outcome", out,
		"new_high_score", result.NewHighScore,
	)
	c.setState(StateGameOver)
}

// Dispatch applies an abstract input action. Returns whether it had an effect.
// ActionQuit is left to the front end.
func (c *Controller) Dispatch(a core.Action) bool {
	switch a {
	case core.ActionMoveUp:
		return c.Move(snake.DirUp)
	case core.ActionMoveDown:
		return c.Move(snake.DirDown)
	case core.ActionMoveLeft:
		return c.Move(snake.DirLeft)
	case core.ActionMoveRight:
		return c.Move(snake.DirRight)
	case core.ActionTogglePause:
		return c.TogglePause()
	case core.ActionStart:
		return c.Start()
	case core.ActionBack:
		return c.Dismiss()
	default:
		return false
	}
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.logger.Debug("state changed", "from", from, "to", to)
	c.observer.StateChanged(from, to)
}
