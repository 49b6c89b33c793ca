package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hard-coded default configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size:     20,
			CellSize: 2,
		},
		Difficulty: DifficultySettings{
			Default: DifficultyEasy,
			Profiles: map[Difficulty]DifficultyProfile{
				DifficultyEasy: {
					InitialSpeedMs:       200,
					SpeedDecreasePerFood: 1,
					MinSpeedMs:           120,
				},
				DifficultyMedium: {
					InitialSpeedMs:       150,
					SpeedDecreasePerFood: 2,
					MinSpeedMs:           80,
				},
				DifficultyHard: {
					InitialSpeedMs:       80,
					SpeedDecreasePerFood: 3,
					MinSpeedMs:           40,
				},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
