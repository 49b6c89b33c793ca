package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Board glyphs and colors
const (
	glyphHead  = '█'
	glyphBody  = '▓'
	glyphFood  = '●'
	glyphEmpty = ' '

	colorHead   = core.ColorBrightGreen
	colorBody   = core.ColorGreen
	colorFood   = core.ColorBrightRed
	colorBorder = core.ColorGray
	colorHUD    = core.ColorBrightWhite
	colorTitle  = core.ColorBrightYellow
	colorAccent = core.ColorBrightCyan
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// BoardView carries the session facts the board renderer shows next to the
// engine snapshot.
type BoardView struct {
	State      session.State
	Difficulty config.Difficulty
	Profile    config.DifficultyProfile
	HighScore  int
	GridSize   int
	CellSize   int
	LastRun    *session.RunResult // Set in GameOver
}

// BoardSize returns the screen area needed for a grid, HUD included.
func BoardSize(gridSize, cellSize int) (w, h int) {
	return gridSize*cellSize + 2, gridSize + 2 + hudHeight
}

// DrawBoard renders the HUD, the board and the state overlay into scr.
// Before the first run snap is empty and only the frame is drawn.
func DrawBoard(scr *core.Screen, snap snake.Snapshot, v BoardView) {
	scr.Clear()

	grid := v.GridSize
	if snap.GridSize > 0 {
		grid = snap.GridSize
	}
	cs := max(v.CellSize, 1)

	w, h := BoardSize(grid, cs)
	if scr.Width() < w || scr.Height() < h {
		drawTooSmall(scr, w, h)
		return
	}

	box := core.NewRect((scr.Width()-w)/2, (scr.Height()-h)/2+hudHeight, w, grid+2)
	drawHUD(scr, box, snap, v)
	scr.DrawBox(box, colorBorder)

	if v.State != session.StateIdle {
		inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
		cellAt := func(p snake.Position, r rune, c core.Color) {
			x := inner.X + p.X*cs
			y := inner.Y + p.Y
			if !inner.Contains(x, y) {
				return
			}
			for i := range cs {
				scr.SetColored(x+i, y, r, c)
			}
		}

		if snap.Food != snake.NoFood {
			cellAt(snap.Food, glyphEmpty, core.ColorDefault)
			scr.SetColored(box.X+1+snap.Food.X*cs, box.Y+1+snap.Food.Y, glyphFood, colorFood)
		}
		// Body first so the head wins on a collision frame.
		for i := len(snap.Segments) - 1; i >= 1; i-- {
			cellAt(snap.Segments[i], glyphBody, colorBody)
		}
		if len(snap.Segments) > 0 {
			cellAt(snap.Segments[0], glyphHead, colorHead)
		}
	}

	drawOverlay(scr, box, snap, v)
}

func drawHUD(scr *core.Screen, box core.Rect, snap snake.Snapshot, v BoardView) {
	y := box.Y - hudHeight

	scr.DrawTextColored(box.X, y, "SNAKE", colorTitle)

	score := fmt.Sprintf("Score %d  Best %d", snap.Score, v.HighScore)
	scr.DrawTextColored(box.Right()-len(score), y, score, colorHUD)

	speed := snap.SpeedMs
	if v.State == session.StateIdle || speed == 0 {
		speed = v.Profile.InitialSpeedMs
	}
	info := fmt.Sprintf("%s  %dms", v.Difficulty.Label(), speed)
	if v.State == session.StateRunning || v.State == session.StatePaused {
		info = fmt.Sprintf("%s  length %d", info, snap.Len())
	}
	scr.DrawTextColored(box.X, y+1, info, core.ColorGray)
}

func drawOverlay(scr *core.Screen, box core.Rect, snap snake.Snapshot, v BoardView) {
	var lines []string
	var colors []core.Color
	add := func(s string, c core.Color) {
		lines = append(lines, s)
		colors = append(colors, c)
	}

	switch v.State {
	case session.StateIdle:
		add("S N A K E", colorTitle)
		add("", core.ColorDefault)
		add(fmt.Sprintf("<  %s  >", v.Difficulty.Label()), colorAccent)
		add(fmt.Sprintf("Best: %d", v.HighScore), colorHUD)
		add("", core.ColorDefault)
		add("Enter to start", colorHUD)
		add("Tab to change difficulty", core.ColorGray)

	case session.StatePaused:
		add("PAUSED", colorTitle)
		add("Space to resume", core.ColorGray)

	case session.StateGameOver:
		run := session.RunResult{Score: snap.Score}
		if v.LastRun != nil {
			run = *v.LastRun
		}
		if run.Won {
			add("BOARD CLEARED!", colorTitle)
		} else {
			add("GAME OVER", core.ColorBrightRed)
			add(collisionText(run.Reason), core.ColorGray)
		}
		add(fmt.Sprintf("Score: %d", run.Score), colorHUD)
		if run.NewHighScore {
			add("NEW HIGH SCORE!", colorAccent)
		}
		add("", core.ColorDefault)
		add("Enter: play again  Esc: menu", core.ColorGray)

	default:
		return
	}

	widest := 0
	for _, line := range lines {
		widest = max(widest, len([]rune(line)))
	}

	// Blank panel behind the text.
	_, cy := box.Center()
	top := cy - len(lines)/2
	panelW := min(widest+4, box.W-2)
	panelY := max(top-1, box.Y+1)
	panelH := min(top+len(lines)+1, box.Bottom()-1) - panelY
	scr.DrawRect(core.NewRect(box.X+(box.W-panelW)/2, panelY, panelW, panelH), glyphEmpty)

	for i, line := range lines {
		if line == "" {
			continue
		}
		x := box.X + (box.W-len([]rune(line)))/2
		scr.DrawTextColored(max(x, box.X+1), top+i, line, colors[i])
	}
}

func collisionText(r snake.CollisionReason) string {
	switch r {
	case snake.CollisionWall:
		return "You hit the wall"
	case snake.CollisionSelf:
		return "You ran into yourself"
	default:
		return ""
	}
}

func drawTooSmall(scr *core.Screen, w, h int) {
	msg := []string{
		"Terminal too small",
		fmt.Sprintf("need %dx%d, have %dx%d", w, h, scr.Width(), scr.Height()),
	}
	top := scr.Height()/2 - 1
	for i, line := range msg {
		scr.DrawTextCenteredColored(top+i, line, core.ColorBrightRed)
	}
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
