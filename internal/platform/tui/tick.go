// Package tui provides the Bubble Tea front end for the snake game.
// It handles the terminal UI loop, input mapping, board rendering and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the arming that produced it.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// ticker is the tick driver: a re-armable one-shot tea.Tick.
//
// tea.Tick cannot be cancelled, so every Arm and Disarm bumps a generation
// counter and ticks carrying an older generation are dropped on arrival.
// That keeps at most one live timer regardless of how often the controller
// re-arms.
type ticker struct {
	gen      uint64
	armed    bool
	interval time.Duration
	pending  tea.Cmd
}

var _ session.Scheduler = (*ticker)(nil)

func newTicker() *ticker {
	return &ticker{}
}

// Arm starts a new timer, superseding the previous one.
func (t *ticker) Arm(interval time.Duration) {
	t.gen++
	t.armed = true
	t.interval = interval
	t.pending = tickCmd(t.gen, interval)
}

// Disarm cancels the live timer.
func (t *ticker) Disarm() {
	t.gen++
	t.armed = false
	t.pending = nil
}

// Accept reports whether msg belongs to the live timer.
func (t *ticker) Accept(msg TickMsg) bool {
	return t.armed && msg.Gen == t.gen
}

// Armed reports whether a timer is live.
func (t *ticker) Armed() bool {
	return t.armed
}

// Interval returns the interval of the last arming.
func (t *ticker) Interval() time.Duration {
	return t.interval
}

// Flush returns the command for an arming made since the last flush, or nil.
func (t *ticker) Flush() tea.Cmd {
	cmd := t.pending
	t.pending = nil
	return cmd
}

// Next returns the command that keeps the cadence after an accepted tick:
// a fresh arming if the controller re-armed, otherwise the same interval again.
func (t *ticker) Next() tea.Cmd {
	if cmd := t.Flush(); cmd != nil {
		return cmd
	}
	if !t.armed {
		return nil
	}
	return tickCmd(t.gen, t.interval)
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(at time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: at}
	})
}
