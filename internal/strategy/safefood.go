package strategy

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

func init() {
	Register(Info{
		ID:          "safe",
		Name:        "SafeFoodSeeking",
		Description: "Balances food distance against clearance from a depth-bounded flood fill.",
	}, func(rng *rand.Rand) game.Strategy {
		return &SafeFood{rng: rng}
	})
}

// Utility weights and the flood-fill lookahead bound.
const (
	safeFoodWeight      = 1.0
	safeClearanceWeight = 0.6
	safeClearanceDepth  = 8
)

// SafeFood scores each legal move by a weighted utility of food proximity
// and clearance, where clearance penalizes moves that shrink the free space
// reachable from the new head within a short lookahead.
type SafeFood struct {
	rng *rand.Rand
}

func (s *SafeFood) Name() string { return "SafeFoodSeeking" }

func (s *SafeFood) Decide(st *game.State, self game.PlayerID) core.Direction {
	moves := legalMoves(st, self)
	if len(moves) == 0 {
		return fallbackMove(st, self, s.rng)
	}

	g := newSearchGrid(st, self)
	head := st.Snake(self).Head()
	foodDist := g.distances(st.Food)

	// Distance cap for unreachable food keeps the utility finite while
	// still dominating any clearance bonus.
	unreachable := st.Board.Cells()

	best := moves[0]
	bestUtil := 0.0
	bestFood := -1
	for i, d := range moves {
		cell := head.Add(d)
		fd := g.at(foodDist, cell)
		eff := fd
		if eff < 0 {
			eff = unreachable
		}
		clearance := g.floodFill(cell, safeClearanceDepth)
		util := -safeFoodWeight*float64(eff) + safeClearanceWeight*float64(clearance)

		if i == 0 || util > bestUtil || (util == bestUtil && better(fd, bestFood)) {
			best, bestUtil, bestFood = d, util, fd
		}
	}
	return best
}
