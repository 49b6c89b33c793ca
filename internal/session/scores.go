package session

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// HighScoreTable maps each difficulty to the best score ever reached on it.
type HighScoreTable map[config.Difficulty]int

// NewHighScoreTable returns a table with every difficulty at zero.
func NewHighScoreTable() HighScoreTable {
	t := make(HighScoreTable, len(config.Difficulties()))
	for _, d := range config.Difficulties() {
		t[d] = 0
	}
	return t
}

// Normalize returns a copy holding exactly the known difficulties.
// Unknown keys are dropped and negative scores read as zero, so a corrupt
// table degrades to "no record yet".
func (t HighScoreTable) Normalize() HighScoreTable {
	out := NewHighScoreTable()
	for d, score := range t {
		if d.Valid() && score > 0 {
			out[d] = score
		}
	}
	return out
}

// Clone returns an independent copy.
func (t HighScoreTable) Clone() HighScoreTable {
	out := make(HighScoreTable, len(t))
	for d, score := range t {
		out[d] = score
	}
	return out
}

// ScoreStore persists the high-score table.
// Implementations must treat missing or corrupt data as an all-zero table.
type ScoreStore interface {
	LoadHighScores() (HighScoreTable, error)
	SaveHighScores(HighScoreTable) error
}

// RunRecorder is implemented by stores that also keep a history of runs.
type RunRecorder interface {
	RecordRun(RunResult) error
}

// RunResult describes a finished run.
type RunResult struct {
	RunID        string
	Difficulty   config.Difficulty
	Score        int
	Length       int
	Reason       snake.CollisionReason // CollisionNone when the board was filled
	Won          bool
	Ticks        uint64
	Duration     time.Duration // Time spent running, pauses excluded
	NewHighScore bool
	EndedAt      time.Time
}
