package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/config"
	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

var flagRunCase string

var runCmd = &cobra.Command{
	Use:   "run <strategy1> <strategy2>",
	Short: "Play one game headless and print the result",
	Long: `Play a single game between two strategies without a UI and print the
outcome, final scores and game length.

Examples:
  duel run aggressive safe
  duel run superior noisy --case "Classic Start"
  duel run safe safe --seed 7`,
	Args: cobra.ExactArgs(2),
	Run:  runRunCmd,
}

func init() {
	runCmd.Flags().StringVar(&flagRunCase, "case", "", "Starting case name (default: first case)")
}

func runRunCmd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	id1, id2 := args[0], args[1]
	seed := baseSeed(cfg)

	c := resolveCase(cfg, flagRunCase)
	s1 := mustStrategy(id1, seed+1)
	s2 := mustStrategy(id2, seed+2)

	res, err := game.Run(c, s1, s2, cfg.GameRules(), seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Case:    %s\n", res.Case)
	fmt.Printf("Seed:    %d\n", res.Seed)
	fmt.Printf("Outcome: %s\n", outcomeText(res, s1, s2))
	fmt.Printf("Ticks:   %d\n", res.Ticks)
	fmt.Printf("Player 1 (%s): score %d, length %d\n", res.Strategy1, res.Score1, res.Len1)
	fmt.Printf("Player 2 (%s): score %d, length %d\n", res.Strategy2, res.Score2, res.Len2)
}

func outcomeText(res game.Result, s1, s2 game.Strategy) string {
	switch res.Outcome {
	case game.OutcomeWin1:
		return fmt.Sprintf("win for player 1 (%s)", s1.Name())
	case game.OutcomeWin2:
		return fmt.Sprintf("win for player 2 (%s)", s2.Name())
	case game.OutcomeDraw:
		return "draw"
	default:
		return res.Outcome.String()
	}
}

// resolveCase picks the named case, or the first active case when the name is
// empty. Exits on unknown names.
func resolveCase(cfg config.DuelConfig, name string) game.InitialCase {
	cases := cfg.ActiveCases()
	if name == "" {
		return cases[0]
	}
	c, ok := game.FindCase(cases, name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown case %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'duel list' to see available cases.")
		os.Exit(1)
	}
	return c
}

// mustStrategy instantiates a strategy by ID and exits on unknown IDs.
func mustStrategy(id string, seed int64) game.Strategy {
	s, err := strategy.New(id, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'duel list' to see available strategies.")
		os.Exit(1)
	}
	return s
}
