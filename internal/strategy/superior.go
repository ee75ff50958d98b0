package strategy

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

func init() {
	Register(Info{
		ID:          "superior",
		Name:        "SuperiorAdaptive",
		Description: "Pathfinding with a flood-fill territory guard; switches between aggressive and defensive play.",
	}, func(rng *rand.Rand) game.Strategy {
		return &Superior{rng: rng}
	})
}

// Superior combines BFS pathfinding with a per-move territory guard: moves
// that collapse the reachable free space below the snake's own length are
// rejected as self-traps. It plays the aggressive line (race or block) when
// ahead in score, length or food distance, and maximizes territory when
// behind or cornered.
type Superior struct {
	rng *rand.Rand
}

func (s *Superior) Name() string { return "SuperiorAdaptive" }

func (s *Superior) Decide(st *game.State, self game.PlayerID) core.Direction {
	moves := legalMoves(st, self)
	if len(moves) == 0 {
		return fallbackMove(st, self, s.rng)
	}

	g := newSearchGrid(st, self)
	me := st.Snake(self)
	opp := st.Opponent(self)
	head := me.Head()

	// Territory guard: a move must leave at least body-length free cells
	// reachable, otherwise the snake could not even unwind its own body.
	guarded := make([]core.Direction, 0, len(moves))
	var escape core.Direction
	escapeSpace := -1
	for _, d := range moves {
		space := g.floodFill(head.Add(d), 0)
		if space >= me.Len() {
			guarded = append(guarded, d)
		}
		if space > escapeSpace {
			escape, escapeSpace = d, space
		}
	}
	if len(guarded) == 0 {
		// Everything traps; take whatever keeps the most room.
		return escape
	}

	myFood, oppFood := foodRace(st, self)
	foodAdvantage := myFood >= 0 && (oppFood < 0 || myFood <= oppFood)
	ahead := me.Score > opp.Score || me.Len() > opp.Len()

	if ahead || foodAdvantage {
		if foodAdvantage {
			if d, ok := towardTarget(st, self, guarded, st.Food); ok {
				return d
			}
		}
		if target, ok := blockTarget(st, self); ok {
			if d, ok := towardTarget(st, self, guarded, target); ok {
				return d
			}
		}
	}

	// Defensive mode: keep options open, drift toward food on ties.
	if d, ok := clearanceMove(st, self, guarded); ok {
		return d
	}
	return guarded[s.rng.Intn(len(guarded))]
}
