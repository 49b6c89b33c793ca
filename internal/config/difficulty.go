package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned for difficulty names outside the presets.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Difficulty represents a named difficulty preset. The name doubles as the
// key of the persisted high-score table.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all presets in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the presets.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Label returns the display name.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Next cycles to the following preset, wrapping around.
func (d Difficulty) Next() Difficulty {
	all := Difficulties()
	for i, v := range all {
		if v == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev cycles to the preceding preset, wrapping around.
func (d Difficulty) Prev() Difficulty {
	all := Difficulties()
	for i, v := range all {
		if v == d {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}

// ParseDifficulty parses a preset name, case-insensitively.
// "normal" is accepted as an alias for medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	case "normal":
		return DifficultyMedium, nil
	}
	return "", fmt.Errorf("%w: %q (want easy, medium or hard)", ErrUnknownDifficulty, s)
}
