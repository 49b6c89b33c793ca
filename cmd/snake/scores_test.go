package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func openScoresDB(t *testing.T) *storage.Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	runs := []session.RunResult{
		{RunID: "a", Difficulty: config.DifficultyEasy, Score: 50, Length: 8, Reason: snake.CollisionWall, Duration: 75 * time.Second, EndedAt: base},
		{RunID: "b", Difficulty: config.DifficultyEasy, Score: 120, Length: 15, Reason: snake.CollisionSelf, EndedAt: base.Add(time.Minute)},
		{RunID: "c", Difficulty: config.DifficultyHard, Score: 30, Length: 6, Reason: snake.CollisionWall, EndedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		if err := db.RecordRun(r); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.RunID, err)
		}
	}
	return db
}

func lineWith(out, prefix string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return line
		}
	}
	return ""
}

func TestWriteScoresTableOnly(t *testing.T) {
	var buf bytes.Buffer
	table := session.HighScoreTable{config.DifficultyEasy: 40, config.DifficultyMedium: 0, config.DifficultyHard: 70}

	if err := writeScores(&buf, table, nil, config.Difficulties(), 10, 5); err != nil {
		t.Fatalf("writeScores() failed: %v", err)
	}

	out := buf.String()
	if got := strings.Fields(lineWith(out, "Hard")); len(got) != 2 || got[1] != "70" {
		t.Errorf("hard row = %q, expected best 70", got)
	}
	if strings.Contains(out, "Runs") || strings.Contains(out, "Recent runs") {
		t.Errorf("run sections shown without run history:\n%s", out)
	}
}

func TestWriteScoresRunCounts(t *testing.T) {
	db := openScoresDB(t)
	table := session.HighScoreTable{config.DifficultyEasy: 120, config.DifficultyMedium: 0, config.DifficultyHard: 30}

	var buf bytes.Buffer
	if err := writeScores(&buf, table, db, config.Difficulties(), 10, 0); err != nil {
		t.Fatalf("writeScores() failed: %v", err)
	}
	out := buf.String()

	tests := []struct {
		label      string
		best, runs string
	}{
		{"Easy", "120", "2"},
		{"Medium", "0", "0"},
		{"Hard", "30", "1"},
	}
	for _, tt := range tests {
		got := strings.Fields(lineWith(out, tt.label))
		if len(got) != 3 || got[1] != tt.best || got[2] != tt.runs {
			t.Errorf("%s row = %q, expected best %s and %s runs", tt.label, got, tt.best, tt.runs)
		}
	}

	if !strings.Contains(out, "Best runs - Easy") || !strings.Contains(out, "1:15") {
		t.Errorf("best runs section missing:\n%s", out)
	}
	if strings.Contains(out, "Recent runs") {
		t.Errorf("recent runs listed without --recent:\n%s", out)
	}
}

func TestWriteScoresRecentRuns(t *testing.T) {
	db := openScoresDB(t)

	var buf bytes.Buffer
	if err := writeScores(&buf, session.NewHighScoreTable(), db, []config.Difficulty{config.DifficultyMedium}, 10, 2); err != nil {
		t.Fatalf("writeScores() failed: %v", err)
	}
	out := buf.String()

	_, recent, ok := strings.Cut(out, "Recent runs\n")
	if !ok {
		t.Fatalf("recent runs section missing:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(recent, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("recent section has %d lines, expected header, rule and 2 runs:\n%s", len(lines), recent)
	}
	if f := strings.Fields(lines[2]); f[0] != "Hard" || f[1] != "30" {
		t.Errorf("newest run = %q, expected the hard run", lines[2])
	}
	if f := strings.Fields(lines[3]); f[0] != "Easy" || f[1] != "120" {
		t.Errorf("second run = %q, expected the easy 120 run", lines[3])
	}
	if !strings.Contains(out, "Best runs - Medium\n  No runs recorded yet.") {
		t.Errorf("empty difficulty not reported:\n%s", out)
	}
}
