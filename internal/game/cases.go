package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/core"
)

// InitialCase is a named starting configuration for a duel: body cells
// (tail to head) and heading for both snakes, starting scores, and the
// placement rule for the first food. Case data is read-only catalogue input.
type InitialCase struct {
	Name       string       `yaml:"name"`
	Board      Board        `yaml:"board"`
	Body1      []core.Point `yaml:"body1"`
	Body2      []core.Point `yaml:"body2"`
	Dir1       string       `yaml:"dir1"`
	Dir2       string       `yaml:"dir2"`
	Food       core.Point   `yaml:"food"`
	RandomFood bool         `yaml:"random_food"`
	Score1     int          `yaml:"score1"`
	Score2     int          `yaml:"score2"`
}

// ParseDirection converts a case file direction name to a core.Direction.
func ParseDirection(s string) (core.Direction, error) {
	switch s {
	case "up":
		return core.DirUp, nil
	case "down":
		return core.DirDown, nil
	case "left":
		return core.DirLeft, nil
	case "right":
		return core.DirRight, nil
	default:
		return 0, fmt.Errorf("game: unknown direction %q: %w", s, ErrConfiguration)
	}
}

// NewState validates the case and builds the initial game state. The seed
// drives food placement for this game only. A malformed case yields an error
// wrapping ErrConfiguration.
func NewState(c InitialCase, seed int64) (*State, error) {
	if c.Board.W <= 0 || c.Board.H <= 0 {
		return nil, fmt.Errorf("game: case %q has board %dx%d: %w", c.Name, c.Board.W, c.Board.H, ErrConfiguration)
	}

	dir1, err := ParseDirection(c.Dir1)
	if err != nil {
		return nil, err
	}
	dir2, err := ParseDirection(c.Dir2)
	if err != nil {
		return nil, err
	}

	st := &State{
		Board: c.Board,
		Snakes: [2]Snake{
			{Body: append([]core.Point(nil), c.Body1...), Dir: dir1, Alive: true, Score: c.Score1},
			{Body: append([]core.Point(nil), c.Body2...), Dir: dir2, Alive: true, Score: c.Score2},
		},
		rng: rand.New(rand.NewSource(seed)),
	}

	for _, id := range []PlayerID{Player1, Player2} {
		if err := validateBody(c, st, id); err != nil {
			return nil, err
		}
	}

	// Bodies must not overlap each other.
	for _, p := range st.Snakes[0].Body {
		if st.Snakes[1].Occupies(p) {
			return nil, fmt.Errorf("game: case %q: snakes overlap at (%d,%d): %w", c.Name, p.X, p.Y, ErrConfiguration)
		}
	}

	if c.RandomFood {
		st.respawnFood()
	} else {
		if !c.Board.Contains(c.Food) {
			return nil, fmt.Errorf("game: case %q: food (%d,%d) off board: %w", c.Name, c.Food.X, c.Food.Y, ErrConfiguration)
		}
		if st.Occupied(c.Food) {
			return nil, fmt.Errorf("game: case %q: food (%d,%d) on a snake: %w", c.Name, c.Food.X, c.Food.Y, ErrConfiguration)
		}
		st.Food = c.Food
	}

	return st, nil
}

func validateBody(c InitialCase, st *State, id PlayerID) error {
	s := st.Snake(id)
	if len(s.Body) == 0 {
		return fmt.Errorf("game: case %q: snake %d has empty body: %w", c.Name, id, ErrConfiguration)
	}

	seen := make(map[core.Point]bool, len(s.Body))
	for i, p := range s.Body {
		if !st.Board.Contains(p) {
			return fmt.Errorf("game: case %q: snake %d cell (%d,%d) off board: %w", c.Name, id, p.X, p.Y, ErrConfiguration)
		}
		if seen[p] {
			return fmt.Errorf("game: case %q: snake %d repeats cell (%d,%d): %w", c.Name, id, p.X, p.Y, ErrConfiguration)
		}
		seen[p] = true
		if i > 0 && p.Manhattan(s.Body[i-1]) != 1 {
			return fmt.Errorf("game: case %q: snake %d body not contiguous at (%d,%d): %w", c.Name, id, p.X, p.Y, ErrConfiguration)
		}
	}

	// The declared heading must not point back into the neck, otherwise the
	// go-straight fallback would kill the snake on tick one.
	if len(s.Body) > 1 {
		neck := s.Body[len(s.Body)-2]
		if s.Head().Add(s.Dir) == neck {
			return fmt.Errorf("game: case %q: snake %d heading reverses into its body: %w", c.Name, id, ErrConfiguration)
		}
	}
	return nil
}

// Default board dimensions and snake length, matching the classic duel setup.
const (
	DefaultBoardW        = 51
	DefaultBoardH        = 25
	DefaultInitialLength = 2
)

// BuiltinCases returns the built-in scenario catalogue. foodScore is the
// per-food score increment, used to credit snakes that start a case having
// already eaten.
func BuiltinCases(foodScore int) []InitialCase {
	b := Board{W: DefaultBoardW, H: DefaultBoardH}
	cx, cy := b.Center().X, b.Center().Y

	// Post-first-food position for player 1: ate at the center, length 3.
	p1Fed := []core.Point{{X: cx - 2, Y: cy}, {X: cx - 1, Y: cy}, {X: cx, Y: cy}}

	return []InitialCase{
		{
			Name:  "Classic Start",
			Board: b,
			Body1: []core.Point{{X: 1, Y: cy}, {X: 2, Y: cy}},
			Dir1:  "right",
			Body2: []core.Point{{X: b.W - 2, Y: cy}, {X: b.W - 3, Y: cy}},
			Dir2:  "left",
			Food:  core.Point{X: cx, Y: cy},
		},
		{
			Name:       "First Food Eaten; P2 at (26,13)",
			Board:      b,
			Body1:      p1Fed,
			Dir1:       "right",
			Body2:      []core.Point{{X: cx + 2, Y: cy + 1}, {X: cx + 1, Y: cy + 1}},
			Dir2:       "left",
			RandomFood: true,
			Score1:     foodScore,
		},
		{
			Name:       "First Food Eaten; P2 at (27,14)",
			Board:      b,
			Body1:      p1Fed,
			Dir1:       "right",
			Body2:      []core.Point{{X: cx + 3, Y: cy + 2}, {X: cx + 2, Y: cy + 2}},
			Dir2:       "left",
			RandomFood: true,
			Score1:     foodScore,
		},
		{
			Name:       "First Food Eaten; P2 at (27,12)",
			Board:      b,
			Body1:      p1Fed,
			Dir1:       "right",
			Body2:      []core.Point{{X: cx + 3, Y: cy}, {X: cx + 2, Y: cy}},
			Dir2:       "left",
			RandomFood: true,
			Score1:     foodScore,
		},
	}
}

// FindCase returns the named case from a catalogue.
func FindCase(cases []InitialCase, name string) (InitialCase, bool) {
	for _, c := range cases {
		if c.Name == name {
			return c, true
		}
	}
	return InitialCase{}, false
}
