package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-duel/internal/core"
)

// Strategy decides one move per tick for one snake. Implementations must
// treat the observed state as read-only and must always return a direction;
// the engine enforces legality and recovers from panics, so a defective
// strategy loses rather than crashing the game.
type Strategy interface {
	Name() string
	Decide(st *State, self PlayerID) core.Direction
}

// Rules are the per-game engine parameters. FoodScore is the score increment
// per food eaten.
type Rules struct {
	FoodScore int
	MaxTicks  int
}

// DefaultRules returns the standard duel parameters.
func DefaultRules() Rules {
	return Rules{FoodScore: 100, MaxTicks: 1000}
}

// Result is the immutable outcome record of one completed game.
type Result struct {
	Case      string
	Strategy1 string
	Strategy2 string
	Outcome   Outcome
	Score1    int
	Score2    int
	Len1      int
	Len2      int
	Ticks     int
	Seed      int64
}

// Engine advances a single game tick by tick. It owns the State exclusively
// and keeps no reference to strategies between calls.
type Engine struct {
	state  *State
	rules  Rules
	logger *log.Logger
}

// NewEngine wraps a freshly built state.
func NewEngine(st *State, rules Rules) *Engine {
	return &Engine{state: st, rules: rules, logger: log.Default()}
}

// SetLogger replaces the logger used for strategy defect reports.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// State exposes the engine's game state for observers.
func (e *Engine) State() *State {
	return e.state
}

// Done reports whether the game has reached a terminal outcome.
func (e *Engine) Done() bool {
	return e.state.Outcome.Terminal()
}

// legalize applies central move legality: an invalid direction value or a
// reversal into the snake's own neck is replaced by the current heading.
// Enforced here so no strategy can bypass it.
func legalize(s *Snake, d core.Direction) core.Direction {
	if !d.Valid() {
		return s.Dir
	}
	if s.Len() > 1 && d == s.Dir.Opposite() {
		return s.Dir
	}
	return d
}

// Tick advances the game by one tick given one candidate direction per snake.
// Both moves are resolved simultaneously against the pre-tick state, so the
// resolution carries no move-order bias. Calling Tick after a terminal
// outcome is a caller bug and returns an error wrapping ErrInvariant.
func (e *Engine) Tick(d1, d2 core.Direction) error {
	st := e.state
	if st.Outcome.Terminal() {
		return fmt.Errorf("game: tick %d after terminal outcome %s: %w", st.Tick, st.Outcome, ErrInvariant)
	}

	st.Tick++

	var moves [2]core.Direction
	var newHeads [2]core.Point
	var eats [2]bool
	for i := range st.Snakes {
		s := &st.Snakes[i]
		moves[i] = legalize(s, [2]core.Direction{d1, d2}[i])
		newHeads[i] = s.Head().Add(moves[i])
		eats[i] = newHeads[i] == st.Food
	}

	// Death checks against the pre-tick bodies. A snake's own tail cell is
	// excluded when it will be vacated this tick (no growth). The opponent's
	// new head counts as occupied, so equal new heads kill both.
	var dead [2]bool
	for i := range st.Snakes {
		s := &st.Snakes[i]
		opp := &st.Snakes[1-i]
		nh := newHeads[i]

		switch {
		case !st.Board.Contains(nh):
			dead[i] = true
		case hitsBody(nh, s, !eats[i]):
			dead[i] = true
		case hitsBody(nh, opp, false) || nh == newHeads[1-i]:
			dead[i] = true
		}
	}

	ateAny := false
	for i := range st.Snakes {
		s := &st.Snakes[i]
		if dead[i] {
			// Frozen at the pre-tick body.
			s.Alive = false
			continue
		}
		s.Dir = moves[i]
		s.advance(newHeads[i], eats[i])
		if eats[i] {
			s.Score += e.rules.FoodScore
			ateAny = true
		}
	}

	if ateAny {
		st.respawnFood()
	}

	switch {
	case dead[0] && dead[1]:
		st.Outcome = OutcomeDraw
	case dead[0]:
		st.Outcome = OutcomeWin2
	case dead[1]:
		st.Outcome = OutcomeWin1
	case st.Tick >= e.rules.MaxTicks:
		st.Outcome = resolveByScore(st)
	}

	return nil
}

// hitsBody reports whether p lands on the snake's pre-tick body. When
// excludeTail is set, the tail cell is skipped because it frees up this tick.
func hitsBody(p core.Point, s *Snake, excludeTail bool) bool {
	start := 0
	if excludeTail {
		start = 1
	}
	for _, c := range s.Body[start:] {
		if c == p {
			return true
		}
	}
	return false
}

// resolveByScore settles a max-tick cutoff: higher score wins, equal is a draw.
func resolveByScore(st *State) Outcome {
	switch {
	case st.Snakes[0].Score > st.Snakes[1].Score:
		return OutcomeWin1
	case st.Snakes[1].Score > st.Snakes[0].Score:
		return OutcomeWin2
	default:
		return OutcomeDraw
	}
}

// PlayTick consults both strategies and advances one tick. Strategy panics
// and invalid directions are recovered with the go-straight fallback and
// logged as strategy defects; they never abort the game.
func (e *Engine) PlayTick(s1, s2 Strategy) error {
	d1 := e.decide(s1, Player1)
	d2 := e.decide(s2, Player2)
	return e.Tick(d1, d2)
}

func (e *Engine) decide(s Strategy, id PlayerID) (d core.Direction) {
	snake := e.state.Snake(id)
	if !snake.Alive {
		return snake.Dir
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("strategy panicked, going straight",
				"strategy", s.Name(), "player", int(id), "tick", e.state.Tick, "panic", r)
			d = snake.Dir
		}
	}()

	d = s.Decide(e.state, id)
	if !d.Valid() {
		e.logger.Warn("strategy returned invalid direction, going straight",
			"strategy", s.Name(), "player", int(id), "tick", e.state.Tick, "direction", int(d))
		d = snake.Dir
	}
	return d
}

// Run plays a full game from the given case to completion and returns its
// outcome record. This is the sole entry point consumed by the simulation
// runner and the CLI.
func Run(c InitialCase, s1, s2 Strategy, rules Rules, seed int64) (Result, error) {
	res := Result{
		Case:      c.Name,
		Strategy1: s1.Name(),
		Strategy2: s2.Name(),
		Seed:      seed,
	}

	st, err := NewState(c, seed)
	if err != nil {
		return res, err
	}

	eng := NewEngine(st, rules)
	for !eng.Done() {
		if err := eng.PlayTick(s1, s2); err != nil {
			return res, err
		}
	}

	res.Outcome = st.Outcome
	res.Score1 = st.Snakes[0].Score
	res.Score2 = st.Snakes[1].Score
	res.Len1 = st.Snakes[0].Len()
	res.Len2 = st.Snakes[1].Len()
	res.Ticks = st.Tick
	return res, nil
}
