// Package config provides YAML-based configuration loading for the duel
// simulator: board geometry, game rules, batch parameters and optional custom
// starting cases.
package config

import (
	"fmt"

	"github.com/vovakirdan/snake-duel/internal/game"
)

// DuelConfig contains all configuration for duels and batch simulations.
type DuelConfig struct {
	Board      BoardConfig        `yaml:"board"`
	Rules      RulesConfig        `yaml:"rules"`
	Simulation SimulationConfig   `yaml:"simulation"`
	Cases      []game.InitialCase `yaml:"cases"`
}

// BoardConfig defines the grid the builtin cases are laid out on.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RulesConfig defines per-game engine parameters.
type RulesConfig struct {
	FoodScore int `yaml:"food_score"`
	MaxTicks  int `yaml:"max_ticks"`
}

// SimulationConfig defines batch parameters.
type SimulationConfig struct {
	Repetitions int   `yaml:"repetitions"`
	Workers     int   `yaml:"workers"` // 0 = one per CPU
	Seed        int64 `yaml:"seed"`
}

// GameRules converts the rules section to engine form.
func (c DuelConfig) GameRules() game.Rules {
	return game.Rules{FoodScore: c.Rules.FoodScore, MaxTicks: c.Rules.MaxTicks}
}

// ActiveCases returns the configured custom cases, or the builtin catalogue
// when none are configured.
func (c DuelConfig) ActiveCases() []game.InitialCase {
	if len(c.Cases) > 0 {
		return c.Cases
	}
	return game.BuiltinCases(c.Rules.FoodScore)
}

// Validate rejects configurations the engine cannot run.
func (c DuelConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("config: board %dx%d is not positive", c.Board.Width, c.Board.Height)
	}
	if c.Rules.FoodScore <= 0 {
		return fmt.Errorf("config: food_score %d must be positive", c.Rules.FoodScore)
	}
	if c.Rules.MaxTicks <= 0 {
		return fmt.Errorf("config: max_ticks %d must be positive", c.Rules.MaxTicks)
	}
	if c.Simulation.Repetitions <= 0 {
		return fmt.Errorf("config: repetitions %d must be positive", c.Simulation.Repetitions)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("config: workers %d must not be negative", c.Simulation.Workers)
	}
	return nil
}
