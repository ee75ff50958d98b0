// duel is a two-snake AI duel simulator for the terminal.
//
// Usage:
//
//	duel list                      - List strategies and starting cases
//	duel run <s1> <s2>             - Play one game headless and print the result
//	duel watch <s1> <s2>           - Spectate one game live in the terminal
//	duel sim                       - Run a batch across cases and pairings
//	duel results [run-id]          - Show stored batch runs
//	duel serve                     - Serve the spectator over SSH
//
// Global flags:
//
//	--config <path> - Custom config YAML
//	--seed <value>  - Base RNG seed (0 = random based on time)
//	--db <path>     - Results database path (default: ~/.snake-duel/results.db)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "Snake Duel - pit snake AIs against each other",
	Long: `Snake Duel pits heuristic snake strategies against each other on a
shared board, one game at a time or in reproducible batches.

Available commands:
  list     - Show strategies and starting cases
  run      - Play one game headless and print the result
  watch    - Spectate one game live
  sim      - Run a simulation batch and aggregate win rates
  results  - Inspect stored batch runs
  serve    - Serve the spectator over SSH

Examples:
  duel list
  duel run aggressive safe
  duel watch superior noisy --case "Classic Start"
  duel sim --reps 100 --csv results.csv
  duel results 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Base RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake-duel/results.db", "Path to results database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the effective configuration and exits on error.
func loadConfig() config.DuelConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// baseSeed resolves the --seed flag, falling back to the config and finally
// to the clock.
func baseSeed(cfg config.DuelConfig) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if cfg.Simulation.Seed != 0 {
		return cfg.Simulation.Seed
	}
	return time.Now().UnixNano()
}
