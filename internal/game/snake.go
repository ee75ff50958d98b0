package game

import "github.com/vovakirdan/snake-duel/internal/core"

// PlayerID identifies one of the two snakes in a duel.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player.
func (id PlayerID) Opponent() PlayerID {
	if id == Player1 {
		return Player2
	}
	return Player1
}

// Snake is one agent's body and state. The body is ordered tail to head:
// Body[len-1] is the head, consecutive cells are grid-adjacent, and no cell
// repeats. A snake is mutated once per tick by the engine and frozen the tick
// it dies.
type Snake struct {
	Body  []core.Point
	Dir   core.Direction
	Alive bool
	Score int
}

// Head returns the head cell (last body element).
func (s *Snake) Head() core.Point {
	return s.Body[len(s.Body)-1]
}

// Tail returns the tail cell (first body element).
func (s *Snake) Tail() core.Point {
	return s.Body[0]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any body cell equals p.
func (s *Snake) Occupies(p core.Point) bool {
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

// advance moves the snake to newHead, keeping the tail when growing.
func (s *Snake) advance(newHead core.Point, grow bool) {
	s.Body = append(s.Body, newHead)
	if !grow {
		s.Body = s.Body[1:]
	}
}

// clone returns a deep copy, used when snapshotting state for spectators.
func (s *Snake) clone() Snake {
	body := make([]core.Point, len(s.Body))
	copy(body, s.Body)
	return Snake{Body: body, Dir: s.Dir, Alive: s.Alive, Score: s.Score}
}
