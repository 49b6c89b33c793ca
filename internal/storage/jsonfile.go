package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// FileStore keeps the high-score table in a small JSON document:
//
//	{"easy":0,"medium":0,"hard":0}
//
// It does not keep run history.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ session.ScoreStore = (*FileStore)(nil)

// ErrCorruptScores is returned (wrapped) when the score file is not valid JSON.
var ErrCorruptScores = errors.New("storage: corrupt score file")

// OpenFile returns a store backed by the JSON file at path. The file is
// created on the first save.
func OpenFile(path string) (*FileStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// LoadHighScores reads the table. A missing file is an empty table; an
// unreadable or corrupt one yields the zero table and an error.
func (f *FileStore) LoadHighScores() (session.HighScoreTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) read() (session.HighScoreTable, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.NewHighScoreTable(), nil
	}
	if err != nil {
		return session.NewHighScoreTable(), fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var table session.HighScoreTable
	if err := json.Unmarshal(data, &table); err != nil {
		return session.NewHighScoreTable(), fmt.Errorf("%w %s: %v", ErrCorruptScores, f.path, err)
	}
	return table.Normalize(), nil
}

// ResetHighScores deletes the score file.
func (f *FileStore) ResetHighScores() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: cannot reset scores: %w", err)
	}
	return nil
}

// SaveHighScores merges the table into the file, keeping the higher score
// per difficulty. The file is replaced atomically.
func (f *FileStore) SaveHighScores(t session.HighScoreTable) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A corrupt file is overwritten; any other read failure keeps it.
	current, err := f.read()
	if err != nil && !errors.Is(err, ErrCorruptScores) {
		return err
	}
	for d, score := range t.Normalize() {
		current[d] = max(current[d], score)
	}

	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}
