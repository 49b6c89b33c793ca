package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Options configures a game model.
type Options struct {
	Config     config.SnakeConfig
	Difficulty config.Difficulty // Empty selects the configured default
	Store      session.ScoreStore
	Logger     *log.Logger
	Runtime    core.RuntimeConfig
	Player     string // Shown in logs, set for SSH sessions
}

// frameCache is the renderer side of the controller: it keeps the latest
// frame for View.
type frameCache struct {
	session.NopObserver
	snap snake.Snapshot
}

func (f *frameCache) Frame(snap snake.Snapshot) {
	f.snap = snap
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	ctrl     *session.Controller
	ticks    *ticker
	frame    *frameCache
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	gridSize int
	cellSize int
	width    int
	height   int
	logger   *log.Logger
	quitting bool
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewModel creates a new Bubble Tea model with an idle session.
func NewModel(opts Options) Model {
	cfg := opts.Config

	// Use time-based seed if not specified
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player != "" {
		logger = logger.With("player", opts.Player)
	}

	ticks := newTicker()
	frame := &frameCache{}

	sessOpts := []session.Option{
		session.WithScheduler(ticks),
		session.WithObserver(frame),
		session.WithLogger(logger),
	}
	if opts.Store != nil {
		sessOpts = append(sessOpts, session.WithStore(opts.Store))
	}
	if opts.Difficulty != "" {
		sessOpts = append(sessOpts, session.WithDifficulty(opts.Difficulty))
	}

	engine := snake.NewEngine(cfg.Grid.Size, seed)
	ctrl := session.New(engine, cfg.Difficulty, sessOpts...)

	h := help.New()
	h.ShowAll = false

	return Model{
		ctrl:     ctrl,
		ticks:    ticks,
		frame:    frame,
		keys:     DefaultKeyMap(),
		help:     h,
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		gridSize: engine.GridSize(),
		cellSize: max(cfg.Grid.CellSize, 1),
		width:    opts.Runtime.ScreenW,
		height:   opts.Runtime.ScreenH,
		logger:   logger,
	}
}

// Controller exposes the session for tests and the SSH server.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Init initializes the model. The session starts idle, so no tick is armed.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("snake")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextLevel):
		m.ctrl.SelectDifficulty(m.ctrl.Difficulty().Next())
		return m, nil
	case key.Matches(msg, m.keys.PrevLevel):
		m.ctrl.SelectDifficulty(m.ctrl.Difficulty().Prev())
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.ctrl.Pause()
		m.quitting = true
		return m, tea.Quit
	}

	m.ctrl.Dispatch(action)
	return m, m.ticks.Flush()
}

// handleTick processes simulation ticks. Ticks from a superseded timer are dropped.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticks.Accept(msg) {
		return m, nil
	}
	m.ctrl.Tick()
	return m, m.ticks.Next()
}

func (m Model) boardView() BoardView {
	v := BoardView{
		State:      m.ctrl.State(),
		Difficulty: m.ctrl.Difficulty(),
		Profile:    m.ctrl.Profile(),
		HighScore:  m.ctrl.HighScore(),
		GridSize:   m.gridSize,
		CellSize:   m.cellSize,
	}
	if run, ok := m.ctrl.LastRun(); ok {
		v.LastRun = &run
	}
	return v
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	h := max(m.height-lipgloss.Height(helpView), 0)
	if m.screen.Width() != m.width || m.screen.Height() != h {
		m.screen.Resize(m.width, h)
	}

	DrawBoard(m.screen, m.frame.snap, m.boardView())
	return RenderScreen(m.screen) + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpView)
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
