package sim

import (
	"sort"

	"github.com/vovakirdan/snake-duel/internal/game"
)

// Cell aggregates all repetitions of one (case, strategy1, strategy2)
// pairing.
type Cell struct {
	Case        string
	StrategyID1 string
	StrategyID2 string

	Games    int
	Wins1    int
	Wins2    int
	Draws    int
	Failures int

	TotalScore1 int
	TotalScore2 int
	TotalTicks  int

	// Sums of squared final scores, kept so variance stays a commutative fold.
	SumSqScore1 int
	SumSqScore2 int
}

// played returns the number of games that actually ran.
func (c *Cell) played() int { return c.Games - c.Failures }

// WinRate1 is strategy 1's share of played games, draws counting as half.
func (c *Cell) WinRate1() float64 {
	if c.played() == 0 {
		return 0
	}
	return (float64(c.Wins1) + 0.5*float64(c.Draws)) / float64(c.played())
}

// WinRate2 is the complementary rate for strategy 2.
func (c *Cell) WinRate2() float64 {
	if c.played() == 0 {
		return 0
	}
	return (float64(c.Wins2) + 0.5*float64(c.Draws)) / float64(c.played())
}

// MeanScore1 averages strategy 1's final score over played games.
func (c *Cell) MeanScore1() float64 {
	if c.played() == 0 {
		return 0
	}
	return float64(c.TotalScore1) / float64(c.played())
}

// MeanScore2 averages strategy 2's final score over played games.
func (c *Cell) MeanScore2() float64 {
	if c.played() == 0 {
		return 0
	}
	return float64(c.TotalScore2) / float64(c.played())
}

// ScoreVariance1 is the population variance of strategy 1's final score over
// played games.
func (c *Cell) ScoreVariance1() float64 {
	if c.played() == 0 {
		return 0
	}
	mean := c.MeanScore1()
	return float64(c.SumSqScore1)/float64(c.played()) - mean*mean
}

// ScoreVariance2 is the matching variance for strategy 2.
func (c *Cell) ScoreVariance2() float64 {
	if c.played() == 0 {
		return 0
	}
	mean := c.MeanScore2()
	return float64(c.SumSqScore2)/float64(c.played()) - mean*mean
}

// MeanTicks averages game length over played games.
func (c *Cell) MeanTicks() float64 {
	if c.played() == 0 {
		return 0
	}
	return float64(c.TotalTicks) / float64(c.played())
}

// Standing is one strategy's overall tally across every seat, case and
// opponent it appeared in.
type Standing struct {
	StrategyID string
	Games      int
	Wins       int
	Losses     int
	Draws      int
	Failures   int
}

// WinRate is wins plus half the draws over played games.
func (s *Standing) WinRate() float64 {
	played := s.Games - s.Failures
	if played == 0 {
		return 0
	}
	return (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(played)
}

// Summary is the aggregated view of a batch: one cell per pairing and one
// standing per strategy, both in deterministic order.
type Summary struct {
	Cells     []Cell
	Standings []Standing
}

// Cell looks up the pairing cell, nil when the pairing never ran.
func (s *Summary) Cell(caseName, id1, id2 string) *Cell {
	for i := range s.Cells {
		c := &s.Cells[i]
		if c.Case == caseName && c.StrategyID1 == id1 && c.StrategyID2 == id2 {
			return c
		}
	}
	return nil
}

type cellKey struct {
	caseName, id1, id2 string
}

// Aggregate folds records into a Summary. The fold is commutative, so the
// summary does not depend on the order records arrive in.
func Aggregate(records []OutcomeRecord) Summary {
	cells := make(map[cellKey]*Cell)
	standings := make(map[string]*Standing)

	standing := func(id string) *Standing {
		st, ok := standings[id]
		if !ok {
			st = &Standing{StrategyID: id}
			standings[id] = st
		}
		return st
	}

	for _, r := range records {
		key := cellKey{r.Case, r.StrategyID1, r.StrategyID2}
		c, ok := cells[key]
		if !ok {
			c = &Cell{Case: r.Case, StrategyID1: r.StrategyID1, StrategyID2: r.StrategyID2}
			cells[key] = c
		}
		s1, s2 := standing(r.StrategyID1), standing(r.StrategyID2)

		c.Games++
		s1.Games++
		s2.Games++
		if r.Failed {
			c.Failures++
			s1.Failures++
			s2.Failures++
			continue
		}

		c.TotalScore1 += r.Score1
		c.TotalScore2 += r.Score2
		c.TotalTicks += r.Ticks
		c.SumSqScore1 += r.Score1 * r.Score1
		c.SumSqScore2 += r.Score2 * r.Score2
		switch r.Outcome {
		case game.OutcomeWin1:
			c.Wins1++
			s1.Wins++
			s2.Losses++
		case game.OutcomeWin2:
			c.Wins2++
			s2.Wins++
			s1.Losses++
		default:
			c.Draws++
			s1.Draws++
			s2.Draws++
		}
	}

	out := Summary{
		Cells:     make([]Cell, 0, len(cells)),
		Standings: make([]Standing, 0, len(standings)),
	}
	for _, c := range cells {
		out.Cells = append(out.Cells, *c)
	}
	sort.Slice(out.Cells, func(i, j int) bool {
		a, b := out.Cells[i], out.Cells[j]
		if a.Case != b.Case {
			return a.Case < b.Case
		}
		if a.StrategyID1 != b.StrategyID1 {
			return a.StrategyID1 < b.StrategyID1
		}
		return a.StrategyID2 < b.StrategyID2
	})
	for _, s := range standings {
		out.Standings = append(out.Standings, *s)
	}
	sort.Slice(out.Standings, func(i, j int) bool {
		return out.Standings[i].StrategyID < out.Standings[j].StrategyID
	})
	return out
}
