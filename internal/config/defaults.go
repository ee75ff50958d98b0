package config

import (
	_ "embed"

	"github.com/vovakirdan/snake-duel/internal/game"
)

//go:embed defaults/duel.yaml
var defaultDuelYAML []byte

// DefaultDuelConfig returns the default duel configuration.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Board: BoardConfig{
			Width:  game.DefaultBoardW,
			Height: game.DefaultBoardH,
		},
		Rules: RulesConfig{
			FoodScore: 100,
			MaxTicks:  1000,
		},
		Simulation: SimulationConfig{
			Repetitions: 100,
			Workers:     0,
			Seed:        42,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDuelYAML
}
