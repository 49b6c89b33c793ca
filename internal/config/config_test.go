package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.Grid.Size != 20 {
		t.Errorf("Grid.Size = %d, expected 20", cfg.Grid.Size)
	}
	if cfg.Difficulty.Default != DifficultyEasy {
		t.Errorf("Default difficulty = %s, expected easy", cfg.Difficulty.Default)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg SnakeConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	def := DefaultSnakeConfig()
	if cfg.Grid != def.Grid {
		t.Errorf("Grid = %+v, expected %+v", cfg.Grid, def.Grid)
	}
	for _, d := range Difficulties() {
		if cfg.Difficulty.Profiles[d] != def.Difficulty.Profiles[d] {
			t.Errorf("profile %s = %+v, expected %+v", d, cfg.Difficulty.Profiles[d], def.Difficulty.Profiles[d])
		}
	}
}

func TestPresetsAreDistinct(t *testing.T) {
	cfg := DefaultSnakeConfig()
	seen := make(map[DifficultyProfile]Difficulty)
	for _, d := range Difficulties() {
		p, err := cfg.Profile(d)
		if err != nil {
			t.Fatalf("Profile(%s) failed: %v", d, err)
		}
		if other, dup := seen[p]; dup {
			t.Errorf("%s and %s share the same profile %+v", d, other, p)
		}
		seen[p] = d
	}
}

func TestProfileUnknown(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if _, err := cfg.Profile("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("Profile(nightmare) error = %v, expected ErrUnknownDifficulty", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
	}{
		{"grid too small", func(c *SnakeConfig) { c.Grid.Size = 3 }},
		{"cell size zero", func(c *SnakeConfig) { c.Grid.CellSize = 0 }},
		{"unknown default", func(c *SnakeConfig) { c.Difficulty.Default = "insane" }},
		{"missing profile", func(c *SnakeConfig) { delete(c.Difficulty.Profiles, DifficultyHard) }},
		{"extra profile", func(c *SnakeConfig) {
			c.Difficulty.Profiles["insane"] = DifficultyProfile{InitialSpeedMs: 10, MinSpeedMs: 5}
		}},
		{"zero initial speed", func(c *SnakeConfig) {
			c.Difficulty.Profiles[DifficultyEasy] = DifficultyProfile{InitialSpeedMs: 0, MinSpeedMs: 0}
		}},
		{"min above initial", func(c *SnakeConfig) {
			c.Difficulty.Profiles[DifficultyEasy] = DifficultyProfile{InitialSpeedMs: 100, MinSpeedMs: 150}
		}},
		{"negative decrease", func(c *SnakeConfig) {
			c.Difficulty.Profiles[DifficultyEasy] = DifficultyProfile{InitialSpeedMs: 100, SpeedDecreasePerFood: -1, MinSpeedMs: 50}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) && !errors.Is(err, ErrUnknownDifficulty) {
				t.Errorf("Validate() error %v should wrap a config sentinel", err)
			}
		})
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte(`
grid:
  size: 30
difficulty:
  default: hard
  profiles:
    easy:   {initial_speed_ms: 250, speed_decrease_per_food: 1, min_speed_ms: 150}
    medium: {initial_speed_ms: 150, speed_decrease_per_food: 2, min_speed_ms: 80}
    hard:   {initial_speed_ms: 60,  speed_decrease_per_food: 2, min_speed_ms: 30}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg.Grid.Size != 30 {
		t.Errorf("Grid.Size = %d, expected 30", cfg.Grid.Size)
	}
	// Not in the file, keeps the default
	if cfg.Grid.CellSize != 2 {
		t.Errorf("Grid.CellSize = %d, expected default 2", cfg.Grid.CellSize)
	}
	if cfg.Difficulty.Default != DifficultyHard {
		t.Errorf("Default = %s, expected hard", cfg.Difficulty.Default)
	}
	hard, _ := cfg.Profile(DifficultyHard)
	if hard.InitialSpeedMs != 60 || hard.MinSpeedMs != 30 {
		t.Errorf("hard profile = %+v, expected overridden values", hard)
	}
}

func TestLoadSnakePartialProfileOverride(t *testing.T) {
	defaults := DefaultSnakeConfig().Difficulty.Profiles

	tests := []struct {
		name    string
		yaml    string
		want    map[Difficulty]DifficultyProfile
		wantDef Difficulty
	}{
		{
			name: "single field of one profile",
			yaml: "difficulty:\n  profiles:\n    easy:\n      initial_speed_ms: 180\n",
			want: map[Difficulty]DifficultyProfile{
				DifficultyEasy:   {InitialSpeedMs: 180, SpeedDecreasePerFood: 1, MinSpeedMs: 120},
				DifficultyMedium: defaults[DifficultyMedium],
				DifficultyHard:   defaults[DifficultyHard],
			},
			wantDef: DifficultyEasy,
		},
		{
			name: "two profiles, default kept",
			yaml: "difficulty:\n  profiles:\n    medium: {min_speed_ms: 100}\n    hard: {speed_decrease_per_food: 5}\n",
			want: map[Difficulty]DifficultyProfile{
				DifficultyEasy:   defaults[DifficultyEasy],
				DifficultyMedium: {InitialSpeedMs: 150, SpeedDecreasePerFood: 2, MinSpeedMs: 100},
				DifficultyHard:   {InitialSpeedMs: 80, SpeedDecreasePerFood: 5, MinSpeedMs: 40},
			},
			wantDef: DifficultyEasy,
		},
		{
			name:    "default only",
			yaml:    "difficulty:\n  default: medium\n",
			want:    defaults,
			wantDef: DifficultyMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snake.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadSnake(path)
			if err != nil {
				t.Fatalf("LoadSnake() failed: %v", err)
			}
			if cfg.Difficulty.Default != tt.wantDef {
				t.Errorf("Default = %s, expected %s", cfg.Difficulty.Default, tt.wantDef)
			}
			for d, want := range tt.want {
				if got := cfg.Difficulty.Profiles[d]; got != want {
					t.Errorf("%s profile = %+v, expected %+v", d, got, want)
				}
			}
		})
	}
}

func TestLoadSnakeDoesNotShareDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("difficulty:\n  profiles:\n    hard: {initial_speed_ms: 70}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(path); err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if got := DefaultSnakeConfig().Difficulty.Profiles[DifficultyHard].InitialSpeedMs; got != 80 {
		t.Errorf("default hard profile changed to %d", got)
	}
}

func TestLoadSnakeCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  size: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid custom config error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadSnakeFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake(\"\") failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config invalid: %v", err)
	}
	if cfg.Grid.Size != DefaultSnakeConfig().Grid.Size {
		t.Errorf("Grid.Size = %d, expected default", cfg.Grid.Size)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in       string
		expected Difficulty
		ok       bool
	}{
		{"easy", DifficultyEasy, true},
		{"MEDIUM", DifficultyMedium, true},
		{" hard ", DifficultyHard, true},
		{"normal", DifficultyMedium, true},
		{"", "", false},
		{"fixed", "", false},
	}

	for _, tc := range tests {
		d, err := ParseDifficulty(tc.in)
		if tc.ok {
			if err != nil || d != tc.expected {
				t.Errorf("ParseDifficulty(%q) = %q, %v; expected %q", tc.in, d, err, tc.expected)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownDifficulty) {
			t.Errorf("ParseDifficulty(%q) error = %v, expected ErrUnknownDifficulty", tc.in, err)
		}
	}
}

func TestDifficultyCycle(t *testing.T) {
	if DifficultyEasy.Next() != DifficultyMedium || DifficultyHard.Next() != DifficultyEasy {
		t.Error("Next() should cycle easy -> medium -> hard -> easy")
	}
	if DifficultyEasy.Prev() != DifficultyHard || DifficultyMedium.Prev() != DifficultyEasy {
		t.Error("Prev() should cycle in reverse")
	}
}
