package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreEmptyHighScores(t *testing.T) {
	store := openTestStore(t)

	table, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	for _, d := range config.Difficulties() {
		score, ok := table[d]
		if !ok || score != 0 {
			t.Errorf("high score for %s = %d (present %v), expected 0", d, score, ok)
		}
	}
}

func TestStoreSaveAndLoadHighScores(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveHighScores(session.HighScoreTable{
		config.DifficultyEasy:   120,
		config.DifficultyMedium: 0,
		config.DifficultyHard:   40,
	})
	if err != nil {
		t.Fatalf("SaveHighScores() failed: %v", err)
	}

	table, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if table[config.DifficultyEasy] != 120 {
		t.Errorf("easy = %d, expected 120", table[config.DifficultyEasy])
	}
	if table[config.DifficultyMedium] != 0 {
		t.Errorf("medium = %d, expected 0", table[config.DifficultyMedium])
	}
	if table[config.DifficultyHard] != 40 {
		t.Errorf("hard = %d, expected 40", table[config.DifficultyHard])
	}
}

func TestStoreSaveNeverLowersRecord(t *testing.T) {
	store := openTestStore(t)

	store.SaveHighScores(session.HighScoreTable{config.DifficultyHard: 90})
	// A second session that loaded the table before the first one saved.
	store.SaveHighScores(session.HighScoreTable{config.DifficultyEasy: 30, config.DifficultyHard: 0})

	table, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if table[config.DifficultyHard] != 90 {
		t.Errorf("hard = %d, expected 90 to survive", table[config.DifficultyHard])
	}
	if table[config.DifficultyEasy] != 30 {
		t.Errorf("easy = %d, expected 30", table[config.DifficultyEasy])
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveHighScores(session.HighScoreTable{config.DifficultyMedium: 70})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	table, _ := store.LoadHighScores()
	if table[config.DifficultyMedium] != 70 {
		t.Errorf("medium = %d after reopen, expected 70", table[config.DifficultyMedium])
	}
}

func TestStoreRecordAndQueryRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	runs := []session.RunResult{
		{RunID: "a", Difficulty: config.DifficultyEasy, Score: 50, Length: 8, Reason: snake.CollisionWall, Ticks: 90, Duration: 18 * time.Second, EndedAt: base},
		{RunID: "b", Difficulty: config.DifficultyEasy, Score: 120, Length: 15, Reason: snake.CollisionSelf, Ticks: 300, Duration: time.Minute, EndedAt: base.Add(time.Minute)},
		{RunID: "c", Difficulty: config.DifficultyHard, Score: 30, Length: 6, Reason: snake.CollisionWall, Ticks: 40, EndedAt: base.Add(2 * time.Minute)},
		{RunID: "d", Difficulty: config.DifficultyEasy, Score: 10, Length: 4, Reason: snake.CollisionWall, Ticks: 12, EndedAt: base.Add(3 * time.Minute)},
	}
	for _, r := range runs {
		if err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.RunID, err)
		}
	}

	top, err := store.TopRuns(config.DifficultyEasy, 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns() returned %d runs, expected 2", len(top))
	}
	if top[0].RunID != "b" || top[1].RunID != "a" {
		t.Errorf("TopRuns() order = %s, %s; expected b, a", top[0].RunID, top[1].RunID)
	}
	if top[0].Reason != "self" || top[0].Length != 15 || top[0].Ticks != 300 {
		t.Errorf("unexpected run entry %+v", top[0])
	}
	if top[0].Duration != time.Minute {
		t.Errorf("Duration = %v, expected 1m", top[0].Duration)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentRuns() returned %d runs, expected 3", len(recent))
	}
	if recent[0].RunID != "d" || recent[1].RunID != "c" || recent[2].RunID != "b" {
		t.Errorf("RecentRuns() order = %s, %s, %s; expected d, c, b", recent[0].RunID, recent[1].RunID, recent[2].RunID)
	}

	count, err := store.RunCount(config.DifficultyEasy)
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("RunCount(easy) = %d, expected 3", count)
	}
}

func TestStoreRecordRunIdempotent(t *testing.T) {
	store := openTestStore(t)

	r := session.RunResult{RunID: "same", Difficulty: config.DifficultyMedium, Score: 20, Length: 5}
	store.RecordRun(r)
	if err := store.RecordRun(r); err != nil {
		t.Fatalf("second RecordRun() failed: %v", err)
	}

	count, _ := store.RunCount(config.DifficultyMedium)
	if count != 1 {
		t.Errorf("RunCount() = %d, expected 1", count)
	}
}

func TestStoreWonRun(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(session.RunResult{RunID: "w", Difficulty: config.DifficultyEasy, Score: 130, Won: true})

	top, _ := store.TopRuns(config.DifficultyEasy, 1)
	if len(top) != 1 || !top[0].Won || top[0].Reason != "none" {
		t.Errorf("unexpected won run entry %+v", top)
	}
}

func TestStoreResetHighScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveHighScores(session.HighScoreTable{config.DifficultyEasy: 100})
	store.RecordRun(session.RunResult{RunID: "x", Difficulty: config.DifficultyEasy, Score: 100})

	if err := store.ResetHighScores(); err != nil {
		t.Fatalf("ResetHighScores() failed: %v", err)
	}

	table, _ := store.LoadHighScores()
	if table[config.DifficultyEasy] != 0 {
		t.Errorf("easy = %d after reset, expected 0", table[config.DifficultyEasy])
	}
	count, _ := store.RunCount(config.DifficultyEasy)
	if count != 0 {
		t.Errorf("RunCount() = %d after reset, expected 0", count)
	}
}

func TestStoreTopRunsEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.TopRuns(config.DifficultyHard, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs, got %d", len(runs))
	}
}

func TestStoreWithController(t *testing.T) {
	store := openTestStore(t)
	store.SaveHighScores(session.HighScoreTable{config.DifficultyMedium: 500})

	c := session.New(snake.NewEngine(20, 11), config.DefaultSnakeConfig().Difficulty, session.WithStore(store))
	c.Start()
	for range 100 {
		if c.State() != session.StateRunning {
			break
		}
		c.Tick()
	}
	if c.State() != session.StateGameOver {
		t.Fatalf("State() = %v, expected game over", c.State())
	}

	res, _ := c.LastRun()
	table, _ := store.LoadHighScores()
	if table[config.DifficultyEasy] != res.Score {
		t.Errorf("stored easy record = %d, expected %d", table[config.DifficultyEasy], res.Score)
	}
	if table[config.DifficultyMedium] != 500 {
		t.Errorf("medium record = %d, expected untouched 500", table[config.DifficultyMedium])
	}

	count, _ := store.RunCount(config.DifficultyEasy)
	if count != 1 {
		t.Errorf("RunCount() = %d, expected the run to be recorded", count)
	}
}
