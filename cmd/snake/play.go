package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagDifficulty string
	flagGrid       int
	flagSeed       int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start a snake session in this terminal.

Controls:
  Arrows/WASD   - Steer
  Space/P       - Pause and resume
  Enter         - Start, or play again after game over
  Tab/Shift+Tab - Change difficulty (before a run)
  Esc/B         - Leave the game over screen
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - 200ms per tick, 1ms faster per food, top speed 120ms
  medium - 150ms per tick, 2ms faster per food, top speed 80ms
  hard   - 80ms per tick, 3ms faster per food, top speed 40ms

Examples:
  snake play
  snake play --difficulty hard
  snake play --grid 30
  snake play --config ./my-snake.yaml
  snake play --scores-file ~/.snake/scores.json`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (default from config)")
	playCmd.Flags().IntVar(&flagGrid, "grid", 0, "Board size in cells per side (default from config)")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for food placement (0 = random based on time)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagGrid)
	if err != nil {
		return err
	}

	var difficulty config.Difficulty
	if flagDifficulty != "" {
		difficulty, err = config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
	}

	// The alternate screen hides stderr, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	store, closeStore := openStore(logger)
	defer closeStore()

	rt := core.DefaultConfig()
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	if w, h := tui.BoardSize(cfg.Grid.Size, cfg.Grid.CellSize); w > rt.ScreenW || h+1 > rt.ScreenH {
		fmt.Fprintf(os.Stderr, "Warning: a %dx%d board needs a %dx%d terminal, this one is %dx%d\n",
			cfg.Grid.Size, cfg.Grid.Size, w, h+1, rt.ScreenW, rt.ScreenH)
	}

	runErr := tui.Run(tui.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Store:      store,
		Logger:     logger,
		Runtime:    rt,
	})
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
