package game

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
)

// Outcome is the terminal result of a game.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWin1
	OutcomeWin2
	OutcomeDraw
)

// WinOutcome returns the win outcome for the given player.
func WinOutcome(id PlayerID) Outcome {
	if id == Player1 {
		return OutcomeWin1
	}
	return OutcomeWin2
}

// Winner returns the winning player, if the outcome is a win.
func (o Outcome) Winner() (PlayerID, bool) {
	switch o {
	case OutcomeWin1:
		return Player1, true
	case OutcomeWin2:
		return Player2, true
	default:
		return 0, false
	}
}

// Terminal reports whether the game has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomeOngoing
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeWin1:
		return "win1"
	case OutcomeWin2:
		return "win2"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// ParseOutcome is the inverse of String.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "ongoing":
		return OutcomeOngoing, true
	case "win1":
		return OutcomeWin1, true
	case "win2":
		return OutcomeWin2, true
	case "draw":
		return OutcomeDraw, true
	default:
		return OutcomeOngoing, false
	}
}

// State is the full state of one duel: the board, both snakes, the food cell,
// the tick counter and the terminal outcome. A State is owned by exactly one
// engine run and never shared across concurrent games.
type State struct {
	Board   Board
	Tick    int
	Snakes  [2]Snake
	Food    core.Point
	Outcome Outcome

	rng *rand.Rand
}

// Snake returns the snake for the given player.
func (st *State) Snake(id PlayerID) *Snake {
	return &st.Snakes[id-1]
}

// Opponent returns the other player's snake.
func (st *State) Opponent(id PlayerID) *Snake {
	return &st.Snakes[id.Opponent()-1]
}

// Occupied reports whether any snake body cell equals p.
func (st *State) Occupied(p core.Point) bool {
	return st.Snakes[0].Occupies(p) || st.Snakes[1].Occupies(p)
}

// emptyCells enumerates unoccupied cells in row-major order. The fixed order
// keeps food placement deterministic for a given RNG state.
func (st *State) emptyCells() []core.Point {
	cells := make([]core.Point, 0, st.Board.Cells())
	for y := 0; y < st.Board.H; y++ {
		for x := 0; x < st.Board.W; x++ {
			p := core.Point{X: x, Y: y}
			if !st.Occupied(p) {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// respawnFood places food uniformly at random on an empty cell.
func (st *State) respawnFood() {
	cells := st.emptyCells()
	if len(cells) == 0 {
		// Board completely covered by snakes. Park the food off-board; the
		// max-tick cutoff ends the game.
		st.Food = core.Point{X: -1, Y: -1}
		return
	}
	st.Food = cells[st.rng.Intn(len(cells))]
}

// Clone returns a deep copy of the state for observers. The copy shares no
// mutable data with the original and carries no RNG.
func (st *State) Clone() *State {
	return &State{
		Board:   st.Board,
		Tick:    st.Tick,
		Snakes:  [2]Snake{st.Snakes[0].clone(), st.Snakes[1].clone()},
		Food:    st.Food,
		Outcome: st.Outcome,
	}
}
