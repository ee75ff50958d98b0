package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/snake-duel/internal/core"
)

// scripted returns a fixed sequence of directions, then keeps repeating the
// last one.
type scripted struct {
	name string
	dirs []core.Direction
	i    int
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) Decide(_ *State, _ PlayerID) core.Direction {
	d := s.dirs[core.Min(s.i, len(s.dirs)-1)]
	s.i++
	return d
}

// panicky always panics, exercising the strategy defect recovery path.
type panicky struct{}

func (panicky) Name() string                          { return "panicky" }
func (panicky) Decide(_ *State, _ PlayerID) core.Direction { panic("boom") }

func rowCase(name string, w, h int, food core.Point) InitialCase {
	return InitialCase{
		Name:  name,
		Board: Board{W: w, H: h},
		Body1: []core.Point{{X: 1, Y: h / 2}, {X: 2, Y: h / 2}},
		Dir1:  "right",
		Body2: []core.Point{{X: w - 2, Y: h / 2}, {X: w - 3, Y: h / 2}},
		Dir2:  "left",
		Food:  food,
	}
}

func checkBodyIntegrity(t *testing.T, st *State) {
	t.Helper()
	for i := range st.Snakes {
		s := &st.Snakes[i]
		seen := make(map[core.Point]bool)
		for j, p := range s.Body {
			if seen[p] {
				t.Fatalf("tick %d: snake %d repeats cell (%d,%d)", st.Tick, i+1, p.X, p.Y)
			}
			seen[p] = true
			if j > 0 && p.Manhattan(s.Body[j-1]) != 1 {
				t.Fatalf("tick %d: snake %d not contiguous at (%d,%d)", st.Tick, i+1, p.X, p.Y)
			}
		}
	}
}

func TestTickBodyAndFoodInvariants(t *testing.T) {
	c := rowCase("invariants", 11, 7, core.Point{X: 5, Y: 3})
	st, err := NewState(c, 7)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 200})

	s1 := &scripted{name: "s1", dirs: []core.Direction{core.DirRight, core.DirUp, core.DirRight, core.DirDown}}
	s2 := &scripted{name: "s2", dirs: []core.Direction{core.DirLeft, core.DirDown, core.DirLeft, core.DirUp}}

	for !eng.Done() {
		if err := eng.PlayTick(s1, s2); err != nil {
			t.Fatal(err)
		}
		checkBodyIntegrity(t, st)
		if st.Board.Contains(st.Food) && st.Occupied(st.Food) {
			t.Fatalf("tick %d: food (%d,%d) on a snake body", st.Tick, st.Food.X, st.Food.Y)
		}
	}
}

func TestFoodGrowthAndScore(t *testing.T) {
	// Food directly ahead of player 1's head.
	c := rowCase("growth", 11, 7, core.Point{X: 3, Y: 3})
	st, err := NewState(c, 42)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 25, MaxTicks: 100})

	lenBefore := st.Snakes[0].Len()
	if err := eng.Tick(core.DirRight, core.DirLeft); err != nil {
		t.Fatal(err)
	}

	if st.Snakes[0].Score != 25 {
		t.Errorf("score = %d, want exactly one food increment of 25", st.Snakes[0].Score)
	}
	if st.Snakes[0].Len() != lenBefore+1 {
		t.Errorf("length = %d, want %d (tail kept on growth)", st.Snakes[0].Len(), lenBefore+1)
	}
	if st.Snakes[1].Score != 0 {
		t.Errorf("opponent score = %d, want 0", st.Snakes[1].Score)
	}
	if st.Food == (core.Point{X: 3, Y: 3}) {
		t.Error("food not respawned after being eaten")
	}
	if st.Occupied(st.Food) {
		t.Errorf("respawned food (%d,%d) on a snake", st.Food.X, st.Food.Y)
	}
}

func TestScoreMonotonicWhileAlive(t *testing.T) {
	c := rowCase("monotonic", 15, 9, core.Point{X: 7, Y: 4})
	st, err := NewState(c, 3)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 300})

	s1 := &scripted{name: "s1", dirs: []core.Direction{core.DirRight}}
	s2 := &scripted{name: "s2", dirs: []core.Direction{core.DirLeft, core.DirUp, core.DirLeft, core.DirDown}}

	prev1, prev2 := st.Snakes[0].Score, st.Snakes[1].Score
	for !eng.Done() {
		if err := eng.PlayTick(s1, s2); err != nil {
			t.Fatal(err)
		}
		if st.Snakes[0].Score < prev1 || st.Snakes[1].Score < prev2 {
			t.Fatalf("tick %d: score decreased", st.Tick)
		}
		prev1, prev2 = st.Snakes[0].Score, st.Snakes[1].Score
	}
}

func TestReversalReplacedByHeading(t *testing.T) {
	c := rowCase("reversal", 11, 7, core.Point{X: 9, Y: 1})
	st, err := NewState(c, 1)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 100})

	// Player 1 heads right; a left candidate is a 180° turn into the neck
	// and must be replaced by the current heading.
	if err := eng.Tick(core.DirLeft, core.DirUp); err != nil {
		t.Fatal(err)
	}
	if st.Snakes[0].Dir != core.DirRight {
		t.Errorf("dir = %v, want right (go-straight fallback)", st.Snakes[0].Dir)
	}
	if head := st.Snakes[0].Head(); head != (core.Point{X: 3, Y: 3}) {
		t.Errorf("head = %v, want (3,3)", head)
	}
}

func TestHeadToHeadIsDraw(t *testing.T) {
	c := InitialCase{
		Name:  "head to head",
		Board: Board{W: 9, H: 3},
		Body1: []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}},
		Dir1:  "right",
		Body2: []core.Point{{X: 7, Y: 1}, {X: 6, Y: 1}},
		Dir2:  "left",
		Food:  core.Point{X: 0, Y: 0},
	}
	st, err := NewState(c, 5)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 100})

	// Heads: (2,1) vs (6,1); after two ticks both land on (4,1).
	for i := 0; i < 2; i++ {
		if err := eng.Tick(core.DirRight, core.DirLeft); err != nil {
			t.Fatal(err)
		}
	}
	if st.Outcome != OutcomeDraw {
		t.Errorf("outcome = %s, want draw on head-to-head", st.Outcome)
	}
	if st.Snakes[0].Alive || st.Snakes[1].Alive {
		t.Error("both snakes should be dead")
	}
}

func TestCorridorDeathIsOpponentWin(t *testing.T) {
	// Player 1 is jammed against the left wall in a 1-wide corridor: every
	// direction is fatal or reverses. Player 2 has room to keep moving.
	c := InitialCase{
		Name:  "corridor",
		Board: Board{W: 7, H: 1},
		Body1: []core.Point{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		Dir1:  "left",
		Body2: []core.Point{{X: 4, Y: 0}, {X: 5, Y: 0}},
		Dir2:  "right",
		Food:  core.Point{X: 3, Y: 0},
	}
	st, err := NewState(c, 9)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 100})

	// Player 1 tries to reverse; the fallback sends it into the wall.
	if err := eng.Tick(core.DirRight, core.DirRight); err != nil {
		t.Fatal(err)
	}
	if st.Snakes[0].Alive {
		t.Error("jammed snake should be dead")
	}
	if st.Outcome != OutcomeWin2 {
		t.Errorf("outcome = %s, want win2", st.Outcome)
	}
}

func TestMaxTickCutoffResolvesByScore(t *testing.T) {
	c := rowCase("cutoff", 11, 7, core.Point{X: 3, Y: 3})
	st, err := NewState(c, 11)
	if err != nil {
		t.Fatal(err)
	}
	st.Snakes[0].Score = 30
	st.Snakes[1].Score = 10
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 1})

	if err := eng.Tick(core.DirUp, core.DirDown); err != nil {
		t.Fatal(err)
	}
	if st.Outcome != OutcomeWin1 {
		t.Errorf("outcome = %s, want win1 (higher score at cutoff)", st.Outcome)
	}
}

func TestMaxTickCutoffEqualScoresIsDraw(t *testing.T) {
	c := rowCase("cutoff draw", 11, 7, core.Point{X: 3, Y: 3})
	st, err := NewState(c, 11)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 1})

	if err := eng.Tick(core.DirUp, core.DirDown); err != nil {
		t.Fatal(err)
	}
	if st.Outcome != OutcomeDraw {
		t.Errorf("outcome = %s, want draw", st.Outcome)
	}
}

func TestTickAfterTerminalIsInvariantViolation(t *testing.T) {
	c := rowCase("terminal", 11, 7, core.Point{X: 3, Y: 3})
	st, err := NewState(c, 2)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 1})

	if err := eng.Tick(core.DirUp, core.DirDown); err != nil {
		t.Fatal(err)
	}
	if !eng.Done() {
		t.Fatal("game should be over at max ticks")
	}

	err = eng.Tick(core.DirUp, core.DirDown)
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("err = %v, want ErrInvariant", err)
	}
}

func TestRunTerminatesWithinMaxTicks(t *testing.T) {
	const maxTicks = 50
	s1 := &scripted{name: "s1", dirs: []core.Direction{core.DirRight, core.DirUp, core.DirLeft, core.DirDown}}
	s2 := &scripted{name: "s2", dirs: []core.Direction{core.DirLeft, core.DirDown, core.DirRight, core.DirUp}}

	res, err := Run(rowCase("bounded", 21, 11, core.Point{X: 10, Y: 5}), s1, s2,
		Rules{FoodScore: 10, MaxTicks: maxTicks}, 77)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks > maxTicks {
		t.Errorf("ticks = %d, want <= %d", res.Ticks, maxTicks)
	}
	if res.Outcome == OutcomeOngoing {
		t.Error("outcome must be terminal")
	}
}

func TestPanickingStrategyGoesStraight(t *testing.T) {
	c := rowCase("panic", 21, 11, core.Point{X: 10, Y: 5})
	st, err := NewState(c, 4)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 100})

	if err := eng.PlayTick(panicky{}, &scripted{name: "s2", dirs: []core.Direction{core.DirLeft}}); err != nil {
		t.Fatal(err)
	}
	// Go-straight fallback: heading right, one cell forward.
	if head := st.Snakes[0].Head(); head != (core.Point{X: 3, Y: 5}) {
		t.Errorf("head = %v, want (3,5)", head)
	}
	if st.Snakes[0].Dir != core.DirRight {
		t.Errorf("dir = %v, want right", st.Snakes[0].Dir)
	}
}

func TestDeterministicFoodRespawn(t *testing.T) {
	run := func() []Snapshot {
		c := rowCase("determinism", 11, 7, core.Point{X: 3, Y: 3})
		st, err := NewState(c, 12345)
		if err != nil {
			t.Fatal(err)
		}
		eng := NewEngine(st, Rules{FoodScore: 10, MaxTicks: 30})
		s1 := &scripted{name: "s1", dirs: []core.Direction{core.DirRight, core.DirUp, core.DirRight, core.DirDown}}
		s2 := &scripted{name: "s2", dirs: []core.Direction{core.DirLeft, core.DirDown, core.DirLeft, core.DirUp}}

		var snaps []Snapshot
		for !eng.Done() {
			if err := eng.PlayTick(s1, s2); err != nil {
				t.Fatal(err)
			}
			snaps = append(snaps, st.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("snapshot %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}
