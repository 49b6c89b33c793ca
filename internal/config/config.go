// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MinGridSize is the smallest board that fits the starting snake with room to move.
const MinGridSize = 4

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid       GridConfig         `yaml:"grid"`
	Difficulty DifficultySettings `yaml:"difficulty"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Size     int `yaml:"size"`      // Cells per side
	CellSize int `yaml:"cell_size"` // Terminal columns per cell, rendering only
}

// DifficultySettings holds the named difficulty profiles.
type DifficultySettings struct {
	Default  Difficulty                       `yaml:"default"`
	Profiles map[Difficulty]DifficultyProfile `yaml:"profiles"`
}

// DifficultyProfile is the speed curve of a difficulty preset.
// Speeds are tick intervals in milliseconds, so lower is faster.
type DifficultyProfile struct {
	InitialSpeedMs       int `yaml:"initial_speed_ms"`
	SpeedDecreasePerFood int `yaml:"speed_decrease_per_food"`
	MinSpeedMs           int `yaml:"min_speed_ms"`
}

// InitialInterval returns the starting tick interval.
func (p DifficultyProfile) InitialInterval() time.Duration {
	return time.Duration(p.InitialSpeedMs) * time.Millisecond
}

// MinInterval returns the fastest tick interval the profile allows.
func (p DifficultyProfile) MinInterval() time.Duration {
	return time.Duration(p.MinSpeedMs) * time.Millisecond
}

// Validate checks a single profile.
func (p DifficultyProfile) Validate() error {
	if p.InitialSpeedMs <= 0 {
		return fmt.Errorf("%w: initial_speed_ms must be positive, got %d", ErrInvalidConfig, p.InitialSpeedMs)
	}
	if p.MinSpeedMs <= 0 {
		return fmt.Errorf("%w: min_speed_ms must be positive, got %d", ErrInvalidConfig, p.MinSpeedMs)
	}
	if p.MinSpeedMs > p.InitialSpeedMs {
		return fmt.Errorf("%w: min_speed_ms %d exceeds initial_speed_ms %d", ErrInvalidConfig, p.MinSpeedMs, p.InitialSpeedMs)
	}
	if p.SpeedDecreasePerFood < 0 {
		return fmt.Errorf("%w: speed_decrease_per_food must not be negative, got %d", ErrInvalidConfig, p.SpeedDecreasePerFood)
	}
	return nil
}

// Profile returns the profile for the given difficulty.
func (c SnakeConfig) Profile(d Difficulty) (DifficultyProfile, error) {
	p, ok := c.Difficulty.Profiles[d]
	if !ok {
		return DifficultyProfile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// Validate checks the whole configuration. Every known difficulty must have
// a profile.
func (c SnakeConfig) Validate() error {
	if c.Grid.Size < MinGridSize {
		return fmt.Errorf("%w: grid size must be at least %d, got %d", ErrInvalidConfig, MinGridSize, c.Grid.Size)
	}
	if c.Grid.CellSize < 1 || c.Grid.CellSize > 4 {
		return fmt.Errorf("%w: cell_size must be between 1 and 4, got %d", ErrInvalidConfig, c.Grid.CellSize)
	}
	if !c.Difficulty.Default.Valid() {
		return fmt.Errorf("%w: default difficulty %q", ErrUnknownDifficulty, c.Difficulty.Default)
	}
	for _, d := range Difficulties() {
		p, ok := c.Difficulty.Profiles[d]
		if !ok {
			return fmt.Errorf("%w: missing profile for %q", ErrInvalidConfig, d)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("difficulty %s: %w", d, err)
		}
	}
	for d := range c.Difficulty.Profiles {
		if !d.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
		}
	}
	return nil
}
