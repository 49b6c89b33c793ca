package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRuns        int
	flagRecent      int
	flagInteractive bool
	flagReset       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the high score of every difficulty and the best runs.

With a difficulty argument only that difficulty's runs are listed.
Run history is kept in the scores database; a --scores-file only keeps
the high-score table.

Examples:
  snake scores
  snake scores hard --runs 20
  snake scores --recent 5
  snake scores --interactive
  snake scores --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of best runs to list per difficulty")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent runs of any difficulty")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive score board")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all high scores and run history")
}

type resetter interface {
	ResetHighScores() error
}

func runScores(_ *cobra.Command, args []string) error {
	levels := config.Difficulties()
	start := config.DifficultyEasy
	if len(args) == 1 {
		d, err := config.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		levels = []config.Difficulty{d}
		start = d
	}

	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	store, closeStore := openStore(logger)
	defer closeStore()

	if flagReset {
		r, ok := store.(resetter)
		if !ok {
			return errors.New("this score store cannot be reset")
		}
		if err := r.ResetHighScores(); err != nil {
			return err
		}
		fmt.Println("High scores cleared.")
		return nil
	}

	db, hasRuns := store.(*storage.Store)

	if flagInteractive {
		if !hasRuns {
			return errors.New("the interactive board needs the scores database")
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(db, start, width, height)
	}

	table, err := store.LoadHighScores()
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	var runs runLister
	if hasRuns {
		runs = db
	}
	return writeScores(os.Stdout, table, runs, levels, flagRuns, flagRecent)
}

// runLister is the run history the scores listing reads. *storage.Store
// implements it.
type runLister interface {
	TopRuns(d config.Difficulty, limit int) ([]storage.RunEntry, error)
	RecentRuns(limit int) ([]storage.RunEntry, error)
	RunCount(d config.Difficulty) (int, error)
}

// writeScores prints the record table and, when runs is set, the play count
// per difficulty, the best runs of each level and the latest recent runs.
func writeScores(w io.Writer, table session.HighScoreTable, runs runLister, levels []config.Difficulty, top, recent int) error {
	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if runs == nil {
		fmt.Fprintf(w, "  %-10s  %s\n", "Difficulty", "Best")
		fmt.Fprintf(w, "  %-10s  %s\n", "----------", "----")
		for _, d := range config.Difficulties() {
			fmt.Fprintf(w, "  %-10s  %d\n", d.Label(), table[d])
		}
		return nil
	}

	fmt.Fprintf(w, "  %-10s  %-6s  %s\n", "Difficulty", "Best", "Runs")
	fmt.Fprintf(w, "  %-10s  %-6s  %s\n", "----------", "----", "----")
	for _, d := range config.Difficulties() {
		count, err := runs.RunCount(d)
		if err != nil {
			return fmt.Errorf("error counting runs: %w", err)
		}
		fmt.Fprintf(w, "  %-10s  %-6d  %d\n", d.Label(), table[d], count)
	}

	for _, d := range levels {
		entries, err := runs.TopRuns(d, top)
		if err != nil {
			return fmt.Errorf("error retrieving runs: %w", err)
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best runs - %s\n", d.Label())
		if len(entries) == 0 {
			fmt.Fprintln(w, "  No runs recorded yet.")
			continue
		}
		writeRuns(w, entries, false)
	}

	if recent <= 0 {
		return nil
	}

	entries, err := runs.RecentRuns(recent)
	if err != nil {
		return fmt.Errorf("error retrieving recent runs: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent runs")
	if len(entries) == 0 {
		fmt.Fprintln(w, "  No runs recorded yet.")
		return nil
	}
	writeRuns(w, entries, true)
	return nil
}

func writeRuns(w io.Writer, entries []storage.RunEntry, withLevel bool) {
	first := "Rank"
	if withLevel {
		first = "Level"
	}
	fmt.Fprintf(w, "  %-6s  %-6s  %-6s  %-6s  %-6s  %s\n", first, "Score", "Length", "Ended", "Time", "Date")
	fmt.Fprintf(w, "  %-6s  %-6s  %-6s  %-6s  %-6s  %s\n", "------", "-----", "------", "-----", "----", "----")
	for i, r := range entries {
		lead := fmt.Sprintf("%d", i+1)
		if withLevel {
			lead = r.Difficulty.Label()
		}
		ended := r.Reason
		if r.Won {
			ended = "won"
		}
		secs := int(r.Duration.Seconds())
		fmt.Fprintf(w, "  %-6s  %-6d  %-6d  %-6s  %-6s  %s\n",
			lead, r.Score, r.Length, ended,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}
