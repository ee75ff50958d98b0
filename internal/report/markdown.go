package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/sim"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

// WriteMarkdown renders a human-readable batch summary: the strategy and case
// catalogues, overall standings, and one win-rate matrix per case. Matrix
// cells are the row strategy's win rate when seated as player 1, draws
// counting half.
func WriteMarkdown(w io.Writer, strategies []strategy.Info, cases []game.InitialCase, s sim.Summary) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("# Duel Simulation Report\n\n")

	p("## Strategies\n\n")
	p("| ID | Name | Description |\n")
	p("|----|------|-------------|\n")
	for _, info := range strategies {
		p("| %s | %s | %s |\n", info.ID, info.Name, info.Description)
	}
	p("\n")

	p("## Cases\n\n")
	p("| Name | Board | Snake 1 | Snake 2 | Food |\n")
	p("|------|-------|---------|---------|------|\n")
	for _, c := range cases {
		food := fmt.Sprintf("(%d,%d)", c.Food.X, c.Food.Y)
		if c.RandomFood {
			food = "random"
		}
		p("| %s | %dx%d | %d cells, %s | %d cells, %s | %s |\n",
			c.Name, c.Board.W, c.Board.H,
			len(c.Body1), c.Dir1, len(c.Body2), c.Dir2, food)
	}
	p("\n")

	p("## Standings\n\n")
	p("| Strategy | Games | Wins | Losses | Draws | Failures | Win rate |\n")
	p("|----------|-------|------|--------|-------|----------|----------|\n")
	for _, st := range s.Standings {
		p("| %s | %d | %d | %d | %d | %d | %.1f%% |\n",
			st.StrategyID, st.Games, st.Wins, st.Losses, st.Draws, st.Failures, 100*st.WinRate())
	}
	p("\n")

	for _, caseName := range caseNames(s) {
		p("## Win rates: %s\n\n", caseName)
		ids := caseStrategyIDs(s, caseName)

		p("| as player 1 \\ as player 2 |")
		for _, id := range ids {
			p(" %s |", id)
		}
		p("\n|---|")
		for range ids {
			p("---|")
		}
		p("\n")

		for _, id1 := range ids {
			p("| %s |", id1)
			for _, id2 := range ids {
				if c := s.Cell(caseName, id1, id2); c != nil {
					p(" %.1f%% |", 100*c.WinRate1())
				} else {
					p(" - |")
				}
			}
			p("\n")
		}
		p("\n")

		p("### Final scores: %s\n\n", caseName)
		p("| Player 1 | Player 2 | Mean 1 | Variance 1 | Mean 2 | Variance 2 |\n")
		p("|----------|----------|--------|------------|--------|------------|\n")
		for i := range s.Cells {
			c := &s.Cells[i]
			if c.Case != caseName {
				continue
			}
			p("| %s | %s | %.1f | %.1f | %.1f | %.1f |\n",
				c.StrategyID1, c.StrategyID2,
				c.MeanScore1(), c.ScoreVariance1(), c.MeanScore2(), c.ScoreVariance2())
		}
		p("\n")
	}

	return err
}

// WriteMarkdownFile writes the summary to a file, creating it with 0644.
func WriteMarkdownFile(path string, strategies []strategy.Info, cases []game.InitialCase, s sim.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create markdown file: %w", err)
	}
	if err := WriteMarkdown(f, strategies, cases, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func caseNames(s sim.Summary) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range s.Cells {
		if !seen[c.Case] {
			seen[c.Case] = true
			names = append(names, c.Case)
		}
	}
	sort.Strings(names)
	return names
}

func caseStrategyIDs(s sim.Summary, caseName string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range s.Cells {
		if c.Case != caseName {
			continue
		}
		for _, id := range []string{c.StrategyID1, c.StrategyID2} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
