package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

var (
	flagWatchCase string
	flagWatchFPS  int
)

var watchCmd = &cobra.Command{
	Use:   "watch <strategy1> <strategy2>",
	Short: "Spectate one game live in the terminal",
	Long: `Watch two strategies play a single game, rendered live.

Controls:
  Space/P    - Pause
  R          - Restart with a fresh seed
  Q/Ctrl+C   - Quit

Examples:
  duel watch aggressive safe
  duel watch superior noisy --case "Classic Start" --fps 30`,
	Args: cobra.ExactArgs(2),
	Run:  runWatchCmd,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchCase, "case", "", "Starting case name (default: first case)")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 15, "Game ticks per second")
}

func runWatchCmd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	id1, id2 := args[0], args[1]

	for _, id := range []string{id1, id2} {
		if !strategy.Exists(id) {
			fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", id)
			fmt.Fprintln(os.Stderr, "Run 'duel list' to see available strategies.")
			os.Exit(1)
		}
	}

	c := resolveCase(cfg, flagWatchCase)

	// Warn when the board will not fit the terminal.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if c.Board.W+2 > w || c.Board.H+6 > h {
			fmt.Fprintf(os.Stderr, "Warning: board %dx%d may not fit a %dx%d terminal\n",
				c.Board.W, c.Board.H, w, h)
		}
	}

	err := tui.RunWatch(tui.WatchConfig{
		Case:        c,
		Rules:       cfg.GameRules(),
		StrategyID1: id1,
		StrategyID2: id2,
		Seed:        flagSeed,
		TickRate:    flagWatchFPS,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running spectator: %v\n", err)
		os.Exit(1)
	}
}
