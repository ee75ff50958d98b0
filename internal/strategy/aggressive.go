package strategy

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

func init() {
	Register(Info{
		ID:          "aggressive",
		Name:        "AggressiveAnticipation",
		Description: "Races the opponent to food via BFS; blocks their path when losing the race.",
	}, func(rng *rand.Rand) game.Strategy {
		return &Aggressive{rng: rng}
	})
}

// Aggressive races the opponent to the food along a BFS shortest path. When
// the opponent is closer or tied, it steers onto the opponent's path instead,
// preferring denial over an acquisition it cannot win.
type Aggressive struct {
	rng *rand.Rand
}

func (a *Aggressive) Name() string { return "AggressiveAnticipation" }

func (a *Aggressive) Decide(st *game.State, self game.PlayerID) core.Direction {
	return aggressiveMove(st, self, a.rng)
}

// aggressiveMove is shared with the noisy and superior variants.
func aggressiveMove(st *game.State, self game.PlayerID, rng *rand.Rand) core.Direction {
	moves := legalMoves(st, self)
	if len(moves) == 0 {
		return fallbackMove(st, self, rng)
	}

	myFood, oppFood := foodRace(st, self)

	if myFood >= 0 && (oppFood < 0 || myFood < oppFood) {
		if d, ok := towardTarget(st, self, moves, st.Food); ok {
			return d
		}
	} else if oppFood >= 0 {
		if target, ok := blockTarget(st, self); ok {
			if d, ok := towardTarget(st, self, moves, target); ok {
				return d
			}
		}
	}

	if d, ok := clearanceMove(st, self, moves); ok {
		return d
	}
	return moves[rng.Intn(len(moves))]
}

// foodRace returns both players' BFS distances to the food, -1 if unreachable.
func foodRace(st *game.State, self game.PlayerID) (mine, theirs int) {
	g := newSearchGrid(st, self)
	mine = g.at(g.distances(st.Snake(self).Head()), st.Food)

	og := newSearchGrid(st, self.Opponent())
	theirs = og.at(og.distances(st.Opponent(self).Head()), st.Food)
	return mine, theirs
}

// blockTarget picks the interception point: the cell on the opponent's
// shortest path to the food, closest to the food, that we can occupy no
// later than the opponent reaches it. Falls back to contesting the food cell
// itself when no race along the path can be won.
func blockTarget(st *game.State, self game.PlayerID) (core.Point, bool) {
	og := newSearchGrid(st, self.Opponent())
	path := og.pathTo(st.Opponent(self).Head(), st.Food)
	if len(path) == 0 {
		return core.Point{}, false
	}

	g := newSearchGrid(st, self)
	myDist := g.distances(st.Snake(self).Head())

	for i := len(path) - 1; i >= 0; i-- {
		md := g.at(myDist, path[i])
		if md >= 0 && md <= i+1 { // opponent arrives at path[i] on step i+1
			return path[i], true
		}
	}
	return st.Food, true
}
