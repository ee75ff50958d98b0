package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-duel/internal/game"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg DuelConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	hard := DefaultDuelConfig()
	if cfg.Board != hard.Board || cfg.Rules != hard.Rules || cfg.Simulation != hard.Simulation {
		t.Errorf("embedded default %+v diverges from hardcoded %+v", cfg, hard)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duel.yaml")
	body := `
board:
  width: 21
  height: 11
rules:
  food_score: 50
  max_ticks: 200
simulation:
  repetitions: 10
  workers: 2
  seed: 7
cases:
  - name: tiny
    board: {width: 21, height: 11}
    body1: [{x: 1, y: 5}, {x: 2, y: 5}]
    dir1: right
    body2: [{x: 19, y: 5}, {x: 18, y: 5}]
    dir2: left
    food: {x: 10, y: 5}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.FoodScore != 50 || cfg.Simulation.Seed != 7 {
		t.Errorf("loaded config = %+v", cfg)
	}
	if got := cfg.GameRules(); got != (game.Rules{FoodScore: 50, MaxTicks: 200}) {
		t.Errorf("GameRules() = %+v", got)
	}

	cases := cfg.ActiveCases()
	if len(cases) != 1 || cases[0].Name != "tiny" {
		t.Fatalf("ActiveCases() = %+v", cases)
	}
	if _, err := game.NewState(cases[0], 1); err != nil {
		t.Errorf("configured case rejected by the engine: %v", err)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config path")
	}
}

func TestActiveCasesFallsBackToBuiltin(t *testing.T) {
	cfg := DefaultDuelConfig()
	cases := cfg.ActiveCases()
	if len(cases) != 4 {
		t.Fatalf("got %d builtin cases, want 4", len(cases))
	}
	if cases[0].Name != "Classic Start" {
		t.Errorf("first case = %q", cases[0].Name)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DuelConfig)
	}{
		{"zero board", func(c *DuelConfig) { c.Board.Width = 0 }},
		{"zero food score", func(c *DuelConfig) { c.Rules.FoodScore = 0 }},
		{"zero max ticks", func(c *DuelConfig) { c.Rules.MaxTicks = 0 }},
		{"zero repetitions", func(c *DuelConfig) { c.Simulation.Repetitions = 0 }},
		{"negative workers", func(c *DuelConfig) { c.Simulation.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDuelConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
