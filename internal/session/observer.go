package session

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Observer receives the side effects the controller surfaces to its
// collaborators: overlays, score displays and the renderer.
type Observer interface {
	StateChanged(from, to State)
	ScoreChanged(score int)
	HighScoreChanged(d config.Difficulty, score int)

	// Frame is called on Start and after every tick, the final one included.
	Frame(snap snake.Snapshot)
}

// NopObserver ignores every notification. Embed it to implement only some hooks.
type NopObserver struct{}

func (NopObserver) StateChanged(State, State) {}
func (NopObserver) ScoreChanged(int) {}
func (NopObserver) HighScoreChanged(config.Difficulty, int) {}
func (NopObserver) Frame(snake.Snapshot) {}
