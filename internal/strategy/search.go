package strategy

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

// searchGrid is a flat occupancy grid over the board, rebuilt per decision.
// Both snake bodies block; the mover's tail cell is left free because it
// vacates on the same tick the head advances.
type searchGrid struct {
	w, h    int
	blocked []bool
}

func newSearchGrid(st *game.State, self game.PlayerID) *searchGrid {
	g := &searchGrid{
		w:       st.Board.W,
		h:       st.Board.H,
		blocked: make([]bool, st.Board.Cells()),
	}
	me := st.Snake(self)
	opp := st.Opponent(self)

	for _, p := range me.Body {
		g.blocked[g.idx(p)] = true
	}
	g.blocked[g.idx(me.Tail())] = false
	for _, p := range opp.Body {
		g.blocked[g.idx(p)] = true
	}
	return g
}

func (g *searchGrid) idx(p core.Point) int {
	return p.Y*g.w + p.X
}

func (g *searchGrid) free(p core.Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h && !g.blocked[g.idx(p)]
}

// distances runs a grid BFS from the given cell and returns a distance map
// with -1 for unreachable cells. The start cell itself may be occupied (a
// snake head); its neighbors are expanded normally.
func (g *searchGrid) distances(from core.Point) []int {
	dist := make([]int, g.w*g.h)
	for i := range dist {
		dist[i] = -1
	}
	if from.X < 0 || from.X >= g.w || from.Y < 0 || from.Y >= g.h {
		return dist
	}

	dist[g.idx(from)] = 0
	queue := []core.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range core.Directions {
			n := p.Add(d)
			if !g.free(n) || dist[g.idx(n)] >= 0 {
				continue
			}
			dist[g.idx(n)] = dist[g.idx(p)] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// at returns the BFS distance for a cell, -1 when off-board or unreachable.
func (g *searchGrid) at(dist []int, p core.Point) int {
	if p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return -1
	}
	return dist[g.idx(p)]
}

// pathTo reconstructs one shortest path from `from` to `to` over free cells,
// excluding `from` itself. Returns nil when unreachable. Tie-breaks follow
// the fixed direction order, keeping path choice deterministic.
func (g *searchGrid) pathTo(from, to core.Point) []core.Point {
	dist := g.distances(from)
	if g.at(dist, to) < 0 {
		return nil
	}

	// Walk backwards from the target along strictly decreasing distances.
	path := make([]core.Point, 0, g.at(dist, to))
	p := to
	for p != from {
		path = append(path, p)
		want := g.at(dist, p) - 1
		for _, d := range core.Directions {
			n := p.Add(d)
			if n == from && want == 0 {
				p = from
				break
			}
			if g.free(n) && g.at(dist, n) == want {
				p = n
				break
			}
		}
	}

	// Reverse into from→to order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// floodFill counts free cells reachable from `from`, up to maxDepth steps
// (maxDepth <= 0 means unbounded). Used as a territory/mobility proxy.
func (g *searchGrid) floodFill(from core.Point, maxDepth int) int {
	if !g.free(from) {
		return 0
	}

	visited := make(map[core.Point]int)
	visited[from] = 0
	queue := []core.Point{from}
	count := 1
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if maxDepth > 0 && visited[p] >= maxDepth {
			continue
		}
		for _, d := range core.Directions {
			n := p.Add(d)
			if !g.free(n) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = visited[p] + 1
			queue = append(queue, n)
			count++
		}
	}
	return count
}

// legalMoves returns the non-reversing directions whose next cell is on the
// board and collision-free against the pre-tick bodies.
func legalMoves(st *game.State, self game.PlayerID) []core.Direction {
	me := st.Snake(self)
	g := newSearchGrid(st, self)
	head := me.Head()

	moves := make([]core.Direction, 0, 3)
	for _, d := range core.Directions {
		if me.Len() > 1 && d == me.Dir.Opposite() {
			continue
		}
		if g.free(head.Add(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// fallbackMove handles the all-fatal situation: prefer any in-bounds
// non-reversing direction, otherwise keep heading. Death is then recorded
// normally by the engine.
func fallbackMove(st *game.State, self game.PlayerID, rng *rand.Rand) core.Direction {
	me := st.Snake(self)
	head := me.Head()

	inBounds := make([]core.Direction, 0, 3)
	for _, d := range core.Directions {
		if me.Len() > 1 && d == me.Dir.Opposite() {
			continue
		}
		if st.Board.Contains(head.Add(d)) {
			inBounds = append(inBounds, d)
		}
	}
	if len(inBounds) == 0 {
		return me.Dir
	}
	return inBounds[rng.Intn(len(inBounds))]
}

// clearanceMove picks the legal move whose resulting head keeps the most
// reachable free space, tie-broken toward the food.
func clearanceMove(st *game.State, self game.PlayerID, moves []core.Direction) (core.Direction, bool) {
	if len(moves) == 0 {
		return 0, false
	}

	g := newSearchGrid(st, self)
	head := st.Snake(self).Head()
	foodDist := g.distances(st.Food)

	best := moves[0]
	bestSpace := -1
	bestFood := -1
	for _, d := range moves {
		cell := head.Add(d)
		space := g.floodFill(cell, 0)
		food := g.at(foodDist, cell)
		if space > bestSpace || (space == bestSpace && better(food, bestFood)) {
			best, bestSpace, bestFood = d, space, food
		}
	}
	return best, true
}

// better compares food distances where -1 means unreachable.
func better(a, b int) bool {
	if a < 0 {
		return false
	}
	return b < 0 || a < b
}

// towardTarget picks the legal move that minimizes the BFS distance to the
// target, tie-broken by larger reachable space. Reports false when the
// target cannot be reached from any candidate.
func towardTarget(st *game.State, self game.PlayerID, moves []core.Direction, target core.Point) (core.Direction, bool) {
	g := newSearchGrid(st, self)
	head := st.Snake(self).Head()
	dist := g.distances(target)

	var best core.Direction
	bestDist := -1
	bestSpace := -1
	found := false
	for _, d := range moves {
		cell := head.Add(d)
		dd := g.at(dist, cell)
		if dd < 0 {
			continue
		}
		space := g.floodFill(cell, 0)
		if !found || dd < bestDist || (dd == bestDist && space > bestSpace) {
			best, bestDist, bestSpace, found = d, dd, space, true
		}
	}
	return best, found
}
