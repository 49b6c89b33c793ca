package storage

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// Memory keeps scores in process memory. State is lost when the process
// exits; it backs tests and serves as the fallback when no database can be opened.
type Memory struct {
	mu    sync.RWMutex
	table session.HighScoreTable
	runs  []session.RunResult
}

var (
	_ session.ScoreStore  = (*Memory)(nil)
	_ session.RunRecorder = (*Memory)(nil)
)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{table: session.NewHighScoreTable()}
}

func (m *Memory) LoadHighScores() (session.HighScoreTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.Clone(), nil
}

// SaveHighScores merges the table, keeping the higher score per difficulty.
func (m *Memory) SaveHighScores(t session.HighScoreTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for d, score := range t.Normalize() {
		m.table[d] = max(m.table[d], score)
	}
	return nil
}

func (m *Memory) RecordRun(r session.RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return nil
}

// Runs returns the recorded runs, oldest first.
func (m *Memory) Runs() []session.RunResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]session.RunResult, len(m.runs))
	copy(out, m.runs)
	return out
}
