package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Values missing from a file keep their defaults. A custom path that cannot be
// read, parsed or validated is an error; the other locations are skipped when unusable.
func LoadSnake(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults and validates the result.
func parse(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// UnmarshalYAML decodes difficulty settings on top of the current values.
// Each profile entry is overlaid onto the profile already present, so a file
// may override a single field of a single difficulty.
func (s *DifficultySettings) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Default  Difficulty               `yaml:"default"`
		Profiles map[Difficulty]yaml.Node `yaml:"profiles"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Default != "" {
		s.Default = raw.Default
	}
	if len(raw.Profiles) == 0 {
		return nil
	}

	profiles := make(map[Difficulty]DifficultyProfile, len(s.Profiles)+len(raw.Profiles))
	for d, p := range s.Profiles {
		profiles[d] = p
	}
	for d, n := range raw.Profiles {
		p := profiles[d]
		if err := n.Decode(&p); err != nil {
			return fmt.Errorf("profile %s: %w", d, err)
		}
		profiles[d] = p
	}
	s.Profiles = profiles
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
