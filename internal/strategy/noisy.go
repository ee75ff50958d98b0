package strategy

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

func init() {
	Register(Info{
		ID:          "noisy",
		Name:        "NoisyAdaptiveAggressive",
		Description: "Aggressive logic with random legal moves mixed in; noise grows with safety.",
	}, func(rng *rand.Rand) game.Strategy {
		return &Noisy{rng: rng}
	})
}

// Noise probability bounds. Cornered snakes play almost deterministically;
// snakes with plenty of room trade determinism for unpredictability.
const (
	noiseFloor       = 0.02
	noiseCeil        = 0.30
	noiseSafetyRange = 5
)

// Noisy wraps the aggressive logic but substitutes a uniformly random legal
// direction with a probability that grows as the snake's surroundings get
// safer, so opponents that anticipate the deterministic line get surprised.
type Noisy struct {
	rng *rand.Rand
}

func (n *Noisy) Name() string { return "NoisyAdaptiveAggressive" }

func (n *Noisy) Decide(st *game.State, self game.PlayerID) core.Direction {
	moves := legalMoves(st, self)
	if len(moves) > 0 && n.rng.Float64() < noiseProbability(st, self) {
		return moves[n.rng.Intn(len(moves))]
	}
	return aggressiveMove(st, self, n.rng)
}

// noiseProbability scales with the head's clearance from walls and from
// nearby body cells. The snake's own head and neck are skipped, they are
// always adjacent and would pin the probability to the floor.
func noiseProbability(st *game.State, self game.PlayerID) float64 {
	me := st.Snake(self)
	head := me.Head()

	wall := core.Min(
		core.Min(head.X, st.Board.W-1-head.X),
		core.Min(head.Y, st.Board.H-1-head.Y),
	)

	body := st.Board.W + st.Board.H
	for id := game.Player1; id <= game.Player2; id++ {
		cells := st.Snake(id).Body
		if id == self {
			cells = cells[:len(cells)-core.Min(2, len(cells))]
		}
		for _, p := range cells {
			body = core.Min(body, head.Manhattan(p))
		}
	}

	safety := core.Clamp(core.Min(wall, body-1), 0, noiseSafetyRange)
	return noiseFloor + (noiseCeil-noiseFloor)*float64(safety)/noiseSafetyRange
}
